// Package config loads the trego configuration from an optional YAML file
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates application configuration values.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Store    StoreConfig    `yaml:"store"`
	Notify   NotifyConfig   `yaml:"notify"`
	Payments PaymentsConfig `yaml:"payments"`
}

// ServerConfig governs HTTP server behaviour. Timeouts are set through
// environment variables (SERVER_READ_TIMEOUT etc.) as duration strings.
type ServerConfig struct {
	Port    int  `yaml:"port"`
	Verbose bool `yaml:"verbose"`

	ReadTimeout     time.Duration `yaml:"-"`
	WriteTimeout    time.Duration `yaml:"-"`
	IdleTimeout     time.Duration `yaml:"-"`
	ShutdownTimeout time.Duration `yaml:"-"`
}

// StoreConfig selects the record-store backend. An empty Path means the
// in-memory store.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// NotifyConfig configures the confirmation-email notifier. An empty URL
// disables it.
type NotifyConfig struct {
	URL  string `yaml:"url"`
	From string `yaml:"from"`
}

// PaymentsConfig carries optional overrides merged over the built-in
// fee and success-rate tables.
type PaymentsConfig struct {
	FeeRates     map[string]float64 `yaml:"fee_rates"`
	SuccessRates map[string]float64 `yaml:"success_rates"`
}

const (
	defaultPort            = 8080
	defaultReadTimeout     = 30 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

// Load reads configuration from the given YAML file (skipped when path is
// empty), applies environment-variable overrides, and fills defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            defaultPort,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("port %d is out of range", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = defaultReadTimeout
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = defaultWriteTimeout
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = defaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = defaultShutdownTimeout
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT value %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("TREGO_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("TREGO_NOTIFY_URL"); v != "" {
		cfg.Notify.URL = v
	}
	if v := os.Getenv("TREGO_NOTIFY_FROM"); v != "" {
		cfg.Notify.From = v
	}
	if v := os.Getenv("TREGO_VERBOSE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			cfg.Server.Verbose = b
		}
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"SERVER_READ_TIMEOUT", &cfg.Server.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", &cfg.Server.WriteTimeout},
		{"SERVER_IDLE_TIMEOUT", &cfg.Server.IdleTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout},
	}
	for _, d := range durations {
		if v := os.Getenv(d.key); v != "" {
			parsed, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", d.key, err)
			}
			*d.dst = parsed
		}
	}
	return nil
}
