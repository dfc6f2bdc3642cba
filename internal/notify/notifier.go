// Package notify sends best-effort payment confirmation emails. Delivery
// failures are logged and swallowed; nothing here sits on the critical path
// of the payment state machine.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Kamaldeep-singh0/trego/internal/record"
)

// SentEmail records a delivery attempt for inspection and tests.
type SentEmail struct {
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Delivered bool      `json:"delivered"`
	SentAt    time.Time `json:"sent_at"`
}

// Config configures the email notifier.
type Config struct {
	URL    string // delivery endpoint; empty disables the notifier
	From   string
	Logger *slog.Logger
	Client *http.Client
}

// EmailNotifier POSTs a JSON confirmation message to a configured delivery
// endpoint. It performs a single attempt per notification, no retries.
type EmailNotifier struct {
	url    string
	from   string
	client *http.Client
	logger *slog.Logger

	mu   sync.Mutex
	sent []SentEmail
}

// New creates an EmailNotifier.
func New(cfg Config) *EmailNotifier {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.From == "" {
		cfg.From = "payments@trego.dev"
	}
	return &EmailNotifier{
		url:    cfg.URL,
		from:   cfg.From,
		client: cfg.Client,
		logger: cfg.Logger,
	}
}

type emailPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// Notify sends a confirmation for a completed transaction. It returns false
// on any failure, including when no endpoint is configured, and never panics
// past its boundary.
func (n *EmailNotifier) Notify(ctx context.Context, tx *record.Transaction) bool {
	if n.url == "" {
		return false
	}

	payload := emailPayload{
		From:    n.from,
		To:      tx.Customer.Email,
		Subject: fmt.Sprintf("Payment confirmed: %s", tx.ConfirmationCode),
		Text:    renderConfirmation(tx),
	}

	ok := n.post(ctx, payload)
	n.mu.Lock()
	n.sent = append(n.sent, SentEmail{
		To:        payload.To,
		Subject:   payload.Subject,
		Delivered: ok,
		SentAt:    time.Now(),
	})
	n.mu.Unlock()
	return ok
}

func (n *EmailNotifier) post(ctx context.Context, payload emailPayload) bool {
	body, err := json.Marshal(payload)
	if err != nil {
		n.logger.Warn("marshal confirmation email", "err", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		n.logger.Warn("build confirmation request", "err", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("deliver confirmation email", "to", payload.To, "err", err)
		return false
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		n.logger.Warn("confirmation email rejected", "to", payload.To, "status", resp.StatusCode)
		return false
	}
	return true
}

// renderConfirmation builds the plain-text confirmation body.
func renderConfirmation(tx *record.Transaction) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hi %s,\n\n", tx.Customer.Name)
	fmt.Fprintf(&sb, "Your payment of %.2f via %s was completed.\n", tx.Amount, tx.PaymentMethod)
	fmt.Fprintf(&sb, "Confirmation code: %s\n", tx.ConfirmationCode)
	if tx.Crypto != nil {
		fmt.Fprintf(&sb, "Amount sent: %s %s\n", tx.Crypto.CryptoAmount, tx.Crypto.Symbol)
		if tx.Crypto.TxHash != "" {
			fmt.Fprintf(&sb, "Transaction hash: %s\n", tx.Crypto.TxHash)
		}
	}
	sb.WriteString("\nThank you for your business.\n")
	return sb.String()
}

// Sent returns a copy of all delivery records.
func (n *EmailNotifier) Sent() []SentEmail {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]SentEmail, len(n.sent))
	copy(out, n.sent)
	return out
}
