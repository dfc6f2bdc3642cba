package record

import (
	"context"
	"testing"
	"time"
)

func TestMemoryBackendName(t *testing.T) {
	s := NewMemoryStore()
	if s.Backend() != "memory" {
		t.Errorf("backend = %q", s.Backend())
	}
}

func TestMemoryUpdateDoesNotAliasCaller(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	tx := &Transaction{
		ID:            "TXN_BTC",
		Amount:        500,
		PaymentMethod: "bitcoin",
		Customer:      Customer{Name: "Ada", Email: "ada@example.com"},
		Crypto:        &CryptoDetails{Symbol: "BTC", CryptoAmount: "0.01200000", WalletAddress: "1abc"},
		Status:        StatusProcessing,
		CreatedAt:     time.Now(),
	}
	s.CreateTransaction(ctx, tx)

	hash := "1synthesizedhash"
	if err := s.UpdateTransaction(ctx, "TXN_BTC", TransactionUpdate{TxHash: &hash}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if tx.Crypto.TxHash == hash {
		t.Error("update mutated the caller's crypto details")
	}

	// Mutating a returned copy must not leak back into the store either.
	got, _ := s.GetTransaction(ctx, "TXN_BTC")
	got.Status = StatusFailed
	again, _ := s.GetTransaction(ctx, "TXN_BTC")
	if again.Status != StatusProcessing {
		t.Errorf("store state mutated through a returned copy: %q", again.Status)
	}
}

func TestListFilterNormalize(t *testing.T) {
	f := ListFilter{Limit: 1000, Skip: -1, Sort: "sideways"}.Normalize()
	if f.Limit != MaxListLimit {
		t.Errorf("limit = %d, want capped at %d", f.Limit, MaxListLimit)
	}
	if f.Skip != 0 {
		t.Errorf("skip = %d, want 0", f.Skip)
	}
	if f.Sort != "desc" {
		t.Errorf("sort = %q, want desc", f.Sort)
	}

	f = ListFilter{}.Normalize()
	if f.Limit != DefaultListLimit {
		t.Errorf("default limit = %d, want %d", f.Limit, DefaultListLimit)
	}
}
