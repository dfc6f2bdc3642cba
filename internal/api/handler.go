// Package api implements the HTTP handlers for payment submission, ticket
// intake, and the admin dashboard.
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/Kamaldeep-singh0/trego/internal/payment"
	"github.com/Kamaldeep-singh0/trego/internal/record"
)

// Handler holds all API handler state.
type Handler struct {
	store    record.Store
	builder  *payment.Builder
	resolver *payment.Resolver
	logger   *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(store record.Store, builder *payment.Builder, resolver *payment.Resolver, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:    store,
		builder:  builder,
		resolver: resolver,
		logger:   logger,
	}
}

// Routes mounts the API routes.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/payments/process", h.ProcessPayment)
		r.Get("/payments/{id}", h.GetPayment)

		r.Post("/contact", h.SubmitContact)
		r.Post("/quote", h.SubmitQuote)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/transactions", h.ListTransactions)
			r.Patch("/transactions/{id}/status", h.UpdateTransactionStatus)
			r.Get("/tickets", h.ListTickets)
			r.Patch("/tickets/{id}/status", h.UpdateTicketStatus)
			r.Get("/dashboard", h.Dashboard)
		})
	})

	r.Get("/health", h.Health)
}
