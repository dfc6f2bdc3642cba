// trego is the marketing-site backend: contact and quote intake, a simulated
// multi-method payment flow, and an admin dashboard, backed by a sqlite
// record store with an in-memory fallback.
package main

import (
	"flag"
	"log"

	"github.com/Kamaldeep-singh0/trego/internal/api"
	"github.com/Kamaldeep-singh0/trego/internal/config"
	"github.com/Kamaldeep-singh0/trego/internal/notify"
	"github.com/Kamaldeep-singh0/trego/internal/payment"
	"github.com/Kamaldeep-singh0/trego/internal/record"
	"github.com/Kamaldeep-singh0/trego/internal/server"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML config file")
		port       = flag.Int("port", 0, "HTTP listen port (overrides config)")
		verbose    = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *verbose {
		cfg.Server.Verbose = true
	}

	srv := server.New(cfg.Server)

	var store record.Store
	if cfg.Store.Path != "" {
		store, err = record.OpenSQLite(cfg.Store.Path)
		if err != nil {
			log.Fatalf("open store: %v", err)
		}
	} else {
		store = record.NewMemoryStore()
	}
	defer store.Close()
	srv.Logger.Info("record store ready", "backend", store.Backend())

	notifier := notify.New(notify.Config{
		URL:    cfg.Notify.URL,
		From:   cfg.Notify.From,
		Logger: srv.Logger,
	})

	tables := payment.NewTables(cfg.Payments.FeeRates, cfg.Payments.SuccessRates)
	builder := payment.NewBuilder(tables, nil, nil)
	resolver := payment.NewResolver(store, notifier, tables, nil, nil, nil, srv.Logger)

	handler := api.NewHandler(store, builder, resolver, srv.Logger)
	handler.Routes(srv.Router)

	if err := srv.Serve(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
