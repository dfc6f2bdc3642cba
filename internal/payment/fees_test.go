package payment

import (
	"testing"
	"time"
)

func TestFeeRateDefaults(t *testing.T) {
	tables := NewTables(nil, nil)

	if got := tables.FeeRate("card"); got != 0.029 {
		t.Errorf("card fee rate = %v, want 0.029", got)
	}
	if got := tables.FeeRate("gift-card"); got != 0 {
		t.Errorf("unknown method fee rate = %v, want 0", got)
	}
}

func TestSuccessRateDefaultOnMiss(t *testing.T) {
	tables := NewTables(nil, nil)

	if got := tables.SuccessRate("gift-card"); got != 0.85 {
		t.Errorf("unknown method success rate = %v, want 0.85", got)
	}
	if got := tables.SuccessRate("card"); got != 0.95 {
		t.Errorf("card success rate = %v, want 0.95", got)
	}
}

func TestProcessingWindowDefaultOnMiss(t *testing.T) {
	tables := NewTables(nil, nil)

	w := tables.ProcessingWindow("gift-card")
	if w.Min != 3000*time.Millisecond || w.Span != 0 {
		t.Errorf("unknown method window = %+v, want flat 3s", w)
	}

	w = tables.ProcessingWindow("bitcoin")
	if w.Min != 10*time.Second || w.Span != 20*time.Second {
		t.Errorf("bitcoin window = %+v, want 10s-30s", w)
	}
}

func TestTableOverrides(t *testing.T) {
	tables := NewTables(
		map[string]float64{"card": 0.05, "store-credit": 0.01},
		map[string]float64{"bitcoin": 1.0},
	)

	if got := tables.FeeRate("card"); got != 0.05 {
		t.Errorf("overridden card fee = %v, want 0.05", got)
	}
	if got := tables.FeeRate("store-credit"); got != 0.01 {
		t.Errorf("new key fee = %v, want 0.01", got)
	}
	if got := tables.FeeRate("paypal"); got != 0.034 {
		t.Errorf("untouched paypal fee = %v, want 0.034", got)
	}
	if got := tables.SuccessRate("bitcoin"); got != 1.0 {
		t.Errorf("overridden bitcoin success rate = %v, want 1.0", got)
	}
}

func TestConfirmationPrefix(t *testing.T) {
	cases := map[string]string{
		"card":          "CARD",
		"credit-card":   "CARD",
		"debit-card":    "CARD",
		"bitcoin":       "CRYPTO",
		"solana":        "CRYPTO",
		"bank-transfer": "XFER",
		"wire-transfer": "XFER",
		"paypal":        "PAY",
		"check":         "PAY",
		"gift-card":     "PAY",
	}
	for method, want := range cases {
		if got := ConfirmationPrefix(method); got != want {
			t.Errorf("ConfirmationPrefix(%q) = %q, want %q", method, got, want)
		}
	}
}

func TestFailureReasonsFallback(t *testing.T) {
	reasons := FailureReasons("gift-card")
	if len(reasons) != 1 || reasons[0] != "Payment processing error" {
		t.Errorf("unknown method reasons = %v, want generic", reasons)
	}
	if len(FailureReasons("card")) == 0 {
		t.Error("card family has no failure reasons")
	}
	if len(FailureReasons("ethereum")) == 0 {
		t.Error("crypto family has no failure reasons")
	}
}

func TestKnownMethod(t *testing.T) {
	for _, m := range []string{
		"card", "credit-card", "debit-card", "bitcoin", "ethereum", "litecoin",
		"dogecoin", "cardano", "solana", "bank-transfer", "wire-transfer",
		"paypal", "check",
	} {
		if !KnownMethod(m) {
			t.Errorf("KnownMethod(%q) = false, want true", m)
		}
	}
	if KnownMethod("unknown-method") {
		t.Error("KnownMethod(unknown-method) = true, want false")
	}
}
