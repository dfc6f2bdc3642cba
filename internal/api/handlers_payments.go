package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kamaldeep-singh0/trego/internal/payment"
	"github.com/Kamaldeep-singh0/trego/internal/record"
	"github.com/Kamaldeep-singh0/trego/internal/server"
)

// paymentRequest is the payment submission body. Amount is a json.Number so
// both numeric and quoted amounts coerce.
type paymentRequest struct {
	Amount        json.Number   `json:"amount"`
	Description   string        `json:"description"`
	PaymentMethod string        `json:"paymentMethod"`
	CustomerInfo  *customerInfo `json:"customerInfo"`

	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
	CardName   string `json:"cardName"`

	WalletAddress string `json:"walletAddress"`
	CryptoTxHash  string `json:"cryptoTxHash"`
}

type customerInfo struct {
	Name      string `json:"name"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Address   string `json:"address"`
}

// ProcessPayment handles POST /api/payments/process. The transaction is
// persisted in the processing state before resolution is scheduled.
func (h *Handler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		server.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	build := payment.Request{
		Amount:        req.Amount.String(),
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
		CardNumber:    req.CardNumber,
		ExpiryDate:    req.ExpiryDate,
		CVV:           req.CVV,
		CardName:      req.CardName,
		WalletAddress: req.WalletAddress,
		CryptoTxHash:  req.CryptoTxHash,
	}
	if req.CustomerInfo != nil {
		build.Customer = &payment.CustomerInput{
			Name:      req.CustomerInfo.Name,
			FirstName: req.CustomerInfo.FirstName,
			LastName:  req.CustomerInfo.LastName,
			Email:     req.CustomerInfo.Email,
			Phone:     req.CustomerInfo.Phone,
			Company:   req.CustomerInfo.Company,
			Address:   req.CustomerInfo.Address,
		}
	}

	tx, err := h.builder.Build(build)
	if err != nil {
		var verr *payment.ValidationError
		if errors.As(err, &verr) {
			server.Error(w, http.StatusBadRequest, verr.Error())
			return
		}
		h.logger.Error("build transaction", "err", err)
		server.Error(w, http.StatusInternalServerError, "payment processing failed")
		return
	}

	if err := h.store.CreateTransaction(r.Context(), tx); err != nil {
		h.logger.Error("record transaction", "transaction_id", tx.ID, "err", err)
		server.Error(w, http.StatusInternalServerError, "failed to record transaction")
		return
	}

	h.resolver.Schedule(tx.ID, tx.PaymentMethod)

	resp := map[string]any{
		"success":       true,
		"transactionId": tx.ID,
		"message":       "Payment received and is being processed",
	}
	if tx.Crypto != nil {
		resp["cryptoAmount"] = tx.Crypto.CryptoAmount
		resp["cryptoType"] = tx.Crypto.Symbol
		resp["networkFee"] = tx.Crypto.NetworkFee
	}
	server.JSON(w, http.StatusOK, resp)
}

// GetPayment handles GET /api/payments/{id}.
func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	tx, err := h.store.GetTransaction(r.Context(), id)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			server.Error(w, http.StatusNotFound, "transaction not found")
			return
		}
		h.logger.Error("load transaction", "transaction_id", id, "err", err)
		server.Error(w, http.StatusInternalServerError, "failed to load transaction")
		return
	}
	server.JSON(w, http.StatusOK, tx)
}
