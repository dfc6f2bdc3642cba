package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Kamaldeep-singh0/trego/internal/record"
	"github.com/Kamaldeep-singh0/trego/internal/server"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Message string `json:"message"`
}

// SubmitContact handles POST /api/contact.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		server.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		server.Error(w, http.StatusBadRequest, "name, email, and message are required")
		return
	}

	ticket := &record.SupportTicket{
		ID:        record.NewTicketID(time.Now()),
		Type:      record.TicketContact,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Message:   req.Message,
		Status:    record.TicketStatusNew,
		CreatedAt: time.Now(),
	}
	h.createTicket(w, r, ticket)
}

type quoteRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Company     string `json:"company"`
	Service     string `json:"service"`
	Budget      string `json:"budget"`
	Description string `json:"description"`
}

// SubmitQuote handles POST /api/quote.
func (h *Handler) SubmitQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		server.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" || req.Email == "" || req.Description == "" {
		server.Error(w, http.StatusBadRequest, "name, email, and description are required")
		return
	}

	ticket := &record.SupportTicket{
		ID:        record.NewTicketID(time.Now()),
		Type:      record.TicketQuote,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Message:   req.Description,
		Service:   req.Service,
		Budget:    req.Budget,
		Status:    record.TicketStatusNew,
		CreatedAt: time.Now(),
	}
	h.createTicket(w, r, ticket)
}

func (h *Handler) createTicket(w http.ResponseWriter, r *http.Request, t *record.SupportTicket) {
	if err := h.store.CreateTicket(r.Context(), t); err != nil {
		h.logger.Error("record ticket", "ticket_id", t.ID, "err", err)
		server.Error(w, http.StatusInternalServerError, "failed to record request")
		return
	}
	server.JSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"ticketId": t.ID,
		"message":  "Your request has been received",
	})
}
