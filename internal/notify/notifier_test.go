package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Kamaldeep-singh0/trego/internal/record"
)

func completedTransaction() *record.Transaction {
	return &record.Transaction{
		ID:               "TXN_1",
		Amount:           1000,
		PaymentMethod:    "card",
		Customer:         record.Customer{Name: "Ada Lovelace", Email: "ada@example.com"},
		Status:           record.StatusCompleted,
		ConfirmationCode: "CARD-ABCDEFGH",
	}
}

func TestNotifyDeliversConfirmation(t *testing.T) {
	var got emailPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("bad payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := New(Config{URL: srv.URL, From: "payments@example.com"})
	if !n.Notify(context.Background(), completedTransaction()) {
		t.Fatal("Notify returned false")
	}

	if got.From != "payments@example.com" || got.To != "ada@example.com" {
		t.Errorf("addresses = %q -> %q", got.From, got.To)
	}
	if !strings.Contains(got.Subject, "CARD-ABCDEFGH") {
		t.Errorf("subject = %q", got.Subject)
	}
	if !strings.Contains(got.Text, "Ada Lovelace") || !strings.Contains(got.Text, "1000.00") {
		t.Errorf("body = %q", got.Text)
	}

	sent := n.Sent()
	if len(sent) != 1 || !sent[0].Delivered {
		t.Errorf("sent = %+v", sent)
	}
}

func TestNotifyIncludesCryptoDetails(t *testing.T) {
	var got emailPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tx := completedTransaction()
	tx.PaymentMethod = "bitcoin"
	tx.Crypto = &record.CryptoDetails{
		Symbol:       "BTC",
		CryptoAmount: "0.02400000",
		TxHash:       "1abcdef",
	}

	n := New(Config{URL: srv.URL})
	n.Notify(context.Background(), tx)

	if !strings.Contains(got.Text, "0.02400000 BTC") {
		t.Errorf("body missing crypto amount: %q", got.Text)
	}
	if !strings.Contains(got.Text, "1abcdef") {
		t.Errorf("body missing tx hash: %q", got.Text)
	}
}

func TestNotifyReturnsFalseOnRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := New(Config{URL: srv.URL})
	if n.Notify(context.Background(), completedTransaction()) {
		t.Error("Notify returned true for a 500 response")
	}

	sent := n.Sent()
	if len(sent) != 1 || sent[0].Delivered {
		t.Errorf("sent = %+v", sent)
	}
}

func TestNotifyReturnsFalseOnUnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	n := New(Config{URL: srv.URL})
	if n.Notify(context.Background(), completedTransaction()) {
		t.Error("Notify returned true for an unreachable endpoint")
	}
}

func TestNotifyDisabledWithoutURL(t *testing.T) {
	n := New(Config{})
	if n.Notify(context.Background(), completedTransaction()) {
		t.Error("Notify returned true with no endpoint configured")
	}
	// A disabled notifier records nothing.
	if len(n.Sent()) != 0 {
		t.Errorf("sent = %+v", n.Sent())
	}
}
