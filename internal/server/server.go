// Package server provides the base HTTP server, middleware chain, and
// response helpers for the trego backend.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Kamaldeep-singh0/trego/internal/config"
)

// Server wraps a chi router with the common middleware stack and provides
// lifecycle management.
type Server struct {
	Router *chi.Mux
	Logger *slog.Logger
	cfg    config.ServerConfig
}

// New creates a Server with request-id, real-ip, CORS, and request-logging
// middleware mounted.
func New(cfg config.ServerConfig) *Server {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(CORS)
	r.Use(RequestLog(logger))

	return &Server{
		Router: r,
		Logger: logger,
		cfg:    cfg,
	}
}

// Serve starts the HTTP server and blocks until a shutdown signal.
func (s *Server) Serve() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.Logger.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	<-done
	s.Logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

// ServeHTTP implements http.Handler so Server can be used directly in tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// Error writes a JSON error response of the form {"error": message}.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]any{"error": message})
}
