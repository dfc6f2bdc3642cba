package payment

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func testBuilder() *Builder {
	now := func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return NewBuilder(NewTables(nil, nil), &fakeRand{}, now)
}

func validCustomer() *CustomerInput {
	return &CustomerInput{Name: "Ada Lovelace", Email: "ada@example.com"}
}

func cardRequest(amount string) Request {
	return Request{
		Amount:        amount,
		PaymentMethod: "card",
		Customer:      validCustomer(),
		CardNumber:    "4242 4242 4242 4242",
		ExpiryDate:    "12/27",
		CVV:           "123",
		CardName:      "Ada Lovelace",
	}
}

func TestBuildCardPayment(t *testing.T) {
	tx, err := testBuilder().Build(cardRequest("1000"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if tx.ProcessingFee != 29.00 {
		t.Errorf("processing fee = %v, want 29.00", tx.ProcessingFee)
	}
	if tx.NetAmount != 971.00 {
		t.Errorf("net amount = %v, want 971.00", tx.NetAmount)
	}
	if tx.Status != "processing" {
		t.Errorf("status = %q, want processing", tx.Status)
	}
	if !strings.HasPrefix(tx.ID, "TXN_") {
		t.Errorf("id = %q, want TXN_ prefix", tx.ID)
	}
	if tx.Card == nil {
		t.Fatal("expected card details")
	}
	if tx.Card.Last4 != "4242" {
		t.Errorf("last4 = %q, want 4242", tx.Card.Last4)
	}
	if tx.Card.Brand != "Visa" {
		t.Errorf("brand = %q, want Visa", tx.Card.Brand)
	}
	if tx.ConfirmationCode != "" || tx.FailureReason != "" {
		t.Error("new transaction must not carry terminal fields")
	}
}

func TestBuildCryptoPayment(t *testing.T) {
	tx, err := testBuilder().Build(Request{
		Amount:        "500",
		PaymentMethod: "bitcoin",
		Customer:      validCustomer(),
		WalletAddress: "1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2",
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if tx.Crypto == nil {
		t.Fatal("expected crypto details")
	}
	if tx.Crypto.CryptoAmount != "0.01200000" {
		t.Errorf("crypto amount = %q, want 0.01200000", tx.Crypto.CryptoAmount)
	}
	if tx.Crypto.NetworkFee != 0.0001 {
		t.Errorf("network fee = %v, want 0.0001", tx.Crypto.NetworkFee)
	}
	if tx.Crypto.Symbol != "BTC" {
		t.Errorf("symbol = %q, want BTC", tx.Crypto.Symbol)
	}
	// Network fee is informational; net amount only reflects the processing fee.
	if tx.NetAmount != Round2(500-tx.ProcessingFee) {
		t.Errorf("net amount = %v, want %v", tx.NetAmount, Round2(500-tx.ProcessingFee))
	}
}

func TestCryptoAmountPrecision(t *testing.T) {
	b := testBuilder()
	for _, amount := range []string{"1", "19.99", "1234.56", "0.01"} {
		tx, err := b.Build(Request{
			Amount:        amount,
			PaymentMethod: "ethereum",
			Customer:      validCustomer(),
			WalletAddress: "0xde0b295669a9fd93d5f28d9ec85e40f4cb697bae",
		})
		if err != nil {
			t.Fatalf("Build(%s): %v", amount, err)
		}
		parts := strings.Split(tx.Crypto.CryptoAmount, ".")
		if len(parts) != 2 || len(parts[1]) != 8 {
			t.Errorf("crypto amount %q does not have 8 decimal places", tx.Crypto.CryptoAmount)
		}
	}
}

func TestBuildRejectsUnsupportedMethod(t *testing.T) {
	_, err := testBuilder().Build(Request{
		Amount:        "100",
		PaymentMethod: "unknown-method",
		Customer:      validCustomer(),
	})
	if err == nil {
		t.Fatal("expected error for unsupported method")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if !strings.Contains(err.Error(), "unsupported payment method") {
		t.Errorf("error = %q, want unsupported payment method", err)
	}
}

func TestBuildRejectsMissingFields(t *testing.T) {
	b := testBuilder()
	cases := []struct {
		name string
		req  Request
	}{
		{"no amount", Request{PaymentMethod: "card", Customer: validCustomer()}},
		{"no method", Request{Amount: "100", Customer: validCustomer()}},
		{"no customer", Request{Amount: "100", PaymentMethod: "card"}},
		{"no email", Request{Amount: "100", PaymentMethod: "card", Customer: &CustomerInput{Name: "A"}}},
		{"no name", Request{Amount: "100", PaymentMethod: "card", Customer: &CustomerInput{Email: "a@b.c"}}},
	}
	for _, tc := range cases {
		if _, err := b.Build(tc.req); err == nil {
			t.Errorf("%s: expected rejection", tc.name)
		}
	}
}

func TestBuildRejectsBadAmounts(t *testing.T) {
	b := testBuilder()
	for _, amount := range []string{"abc", "-5", "0", "NaN", "+Inf"} {
		req := cardRequest(amount)
		if _, err := b.Build(req); err == nil {
			t.Errorf("amount %q: expected rejection", amount)
		}
	}
}

func TestBuildRejectsIncompleteCard(t *testing.T) {
	b := testBuilder()
	strip := []func(*Request){
		func(r *Request) { r.CardNumber = "" },
		func(r *Request) { r.ExpiryDate = "" },
		func(r *Request) { r.CVV = "" },
		func(r *Request) { r.CardName = "" },
	}
	for i, f := range strip {
		req := cardRequest("100")
		f(&req)
		if _, err := b.Build(req); err == nil {
			t.Errorf("case %d: expected rejection for missing card field", i)
		}
	}

	req := cardRequest("100")
	req.CardNumber = "4242 4242 424" // 11 digits
	if _, err := b.Build(req); err == nil {
		t.Error("expected rejection for short card number")
	}
}

func TestBuildRejectsCryptoWithoutWallet(t *testing.T) {
	_, err := testBuilder().Build(Request{
		Amount:        "100",
		PaymentMethod: "bitcoin",
		Customer:      validCustomer(),
	})
	if err == nil {
		t.Fatal("expected rejection for missing wallet address")
	}
}

func TestCardBrandDetection(t *testing.T) {
	cases := map[string]string{
		"4242424242424242": "Visa",
		"5555555555554444": "Mastercard",
		"5105105105105100": "Mastercard",
		"378282246310005":  "American Express",
		"341111111111111":  "American Express",
		"6011111111111117": "Discover",
		"6511111111111117": "Discover",
		"9999999999999999": "Unknown",
	}
	for digits, want := range cases {
		if got := CardBrand(digits); got != want {
			t.Errorf("CardBrand(%s) = %q, want %q", digits, got, want)
		}
	}
}

func TestCustomerNameFromFirstLast(t *testing.T) {
	req := cardRequest("100")
	req.Customer = &CustomerInput{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	tx, err := testBuilder().Build(req)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if tx.Customer.Name != "Ada Lovelace" {
		t.Errorf("name = %q, want Ada Lovelace", tx.Customer.Name)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{29.004, 29.00},
		{29.006, 29.01},
		{970.999, 971.00},
		{0.1 + 0.2, 0.30},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
