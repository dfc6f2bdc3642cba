package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Kamaldeep-singh0/trego/internal/record"
	"github.com/Kamaldeep-singh0/trego/internal/server"
)

func listFilterFromQuery(r *http.Request) record.ListFilter {
	q := r.URL.Query()
	f := record.ListFilter{
		Status: q.Get("status"),
		Type:   q.Get("type"),
		Sort:   q.Get("sort"),
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Limit = n
		}
	}
	if v := q.Get("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Skip = n
		}
	}
	return f
}

// ListTransactions handles GET /api/admin/transactions.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := h.store.ListTransactions(r.Context(), listFilterFromQuery(r))
	if err != nil {
		h.logger.Error("list transactions", "err", err)
		server.Error(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	server.JSON(w, http.StatusOK, txns)
}

// ListTickets handles GET /api/admin/tickets.
func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.store.ListTickets(r.Context(), listFilterFromQuery(r))
	if err != nil {
		h.logger.Error("list tickets", "err", err)
		server.Error(w, http.StatusInternalServerError, "failed to list tickets")
		return
	}
	server.JSON(w, http.StatusOK, tickets)
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

// UpdateTransactionStatus handles PATCH /api/admin/transactions/{id}/status.
func (h *Handler) UpdateTransactionStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		server.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Status == "" {
		server.Error(w, http.StatusBadRequest, "status is required")
		return
	}
	status := record.TransactionStatus(req.Status)
	if !record.ValidTransactionStatus(status) {
		server.Error(w, http.StatusBadRequest, "invalid status: "+req.Status)
		return
	}

	err := h.store.UpdateTransaction(r.Context(), id, record.TransactionUpdate{Status: &status})
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			server.Error(w, http.StatusNotFound, "transaction not found")
			return
		}
		h.logger.Error("update transaction status", "transaction_id", id, "err", err)
		server.Error(w, http.StatusInternalServerError, "failed to update transaction")
		return
	}
	server.JSON(w, http.StatusOK, map[string]any{"success": true, "status": status})
}

// UpdateTicketStatus handles PATCH /api/admin/tickets/{id}/status.
func (h *Handler) UpdateTicketStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		server.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Status == "" {
		server.Error(w, http.StatusBadRequest, "status is required")
		return
	}
	status := record.TicketStatus(req.Status)
	if !record.ValidTicketStatus(status) {
		server.Error(w, http.StatusBadRequest, "invalid status: "+req.Status)
		return
	}

	err := h.store.UpdateTicketStatus(r.Context(), id, status)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			server.Error(w, http.StatusNotFound, "ticket not found")
			return
		}
		h.logger.Error("update ticket status", "ticket_id", id, "err", err)
		server.Error(w, http.StatusInternalServerError, "failed to update ticket")
		return
	}
	server.JSON(w, http.StatusOK, map[string]any{"success": true, "status": status})
}

// Dashboard handles GET /api/admin/dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.DashboardStats(r.Context())
	if err != nil {
		h.logger.Error("dashboard stats", "err", err)
		server.Error(w, http.StatusInternalServerError, "failed to compute dashboard stats")
		return
	}
	server.JSON(w, http.StatusOK, stats)
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	server.JSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"store":  h.store.Backend(),
	})
}
