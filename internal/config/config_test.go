package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 30*time.Second || cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("timeouts = %+v", cfg.Server)
	}
	if cfg.Store.Path != "" {
		t.Errorf("store path = %q, want empty (memory)", cfg.Store.Path)
	}
	if cfg.Notify.URL != "" {
		t.Errorf("notify url = %q, want empty (disabled)", cfg.Notify.URL)
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  verbose: true
store:
  path: /var/lib/trego/records.db
notify:
  url: https://api.resend.com/emails
  from: payments@example.com
payments:
  fee_rates:
    card: 0.031
  success_rates:
    card: 0.5
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9090 || !cfg.Server.Verbose {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Store.Path != "/var/lib/trego/records.db" {
		t.Errorf("store path = %q", cfg.Store.Path)
	}
	if cfg.Notify.From != "payments@example.com" {
		t.Errorf("notify = %+v", cfg.Notify)
	}
	if cfg.Payments.FeeRates["card"] != 0.031 {
		t.Errorf("fee override = %v", cfg.Payments.FeeRates)
	}
	if cfg.Payments.SuccessRates["card"] != 0.5 {
		t.Errorf("success override = %v", cfg.Payments.SuccessRates)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")

	t.Setenv("PORT", "7070")
	t.Setenv("TREGO_STORE_PATH", "/tmp/override.db")
	t.Setenv("TREGO_NOTIFY_URL", "https://notify.example.com")
	t.Setenv("TREGO_VERBOSE", "true")
	t.Setenv("SERVER_READ_TIMEOUT", "45s")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "5s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want env override 7070", cfg.Server.Port)
	}
	if cfg.Store.Path != "/tmp/override.db" {
		t.Errorf("store path = %q", cfg.Store.Path)
	}
	if !cfg.Server.Verbose {
		t.Error("verbose not applied")
	}
	if cfg.Server.ReadTimeout != 45*time.Second || cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("timeouts = %+v", cfg.Server)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := writeConfig(t, "server:\n  port: 99999\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for out-of-range port")
	}

	t.Setenv("PORT", "not-a-number")
	if _, err := Load(""); err == nil {
		t.Error("expected error for non-numeric PORT")
	}
	t.Setenv("PORT", "")

	t.Setenv("SERVER_READ_TIMEOUT", "banana")
	if _, err := Load(""); err == nil {
		t.Error("expected error for bad duration")
	}
}
