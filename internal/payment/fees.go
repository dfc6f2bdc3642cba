// Package payment implements the simulated payment flow: method fee and rate
// tables, the transaction builder, and the delayed outcome resolver.
package payment

import "time"

// Method family classification. The allow-list below is the closed set of
// accepted payment methods; anything else is rejected by the builder before
// any table lookup happens.
var cardMethods = map[string]bool{
	"card":        true,
	"credit-card": true,
	"debit-card":  true,
}

var transferMethods = map[string]bool{
	"bank-transfer": true,
	"wire-transfer": true,
}

// CryptoInfo holds the simulated per-currency conversion parameters.
type CryptoInfo struct {
	Symbol        string
	ExchangeRate  float64 // crypto units per fiat unit
	NetworkFee    float64 // informational, never deducted from net amount
	AddressPrefix string  // used to synthesize transaction hashes
}

var cryptoMethods = map[string]CryptoInfo{
	"bitcoin":  {Symbol: "BTC", ExchangeRate: 0.000024, NetworkFee: 0.0001, AddressPrefix: "1"},
	"ethereum": {Symbol: "ETH", ExchangeRate: 0.00042, NetworkFee: 0.002, AddressPrefix: "0x"},
	"litecoin": {Symbol: "LTC", ExchangeRate: 0.012, NetworkFee: 0.001, AddressPrefix: "L"},
	"dogecoin": {Symbol: "DOGE", ExchangeRate: 12.5, NetworkFee: 1, AddressPrefix: "D"},
	"cardano":  {Symbol: "ADA", ExchangeRate: 2.2, NetworkFee: 0.17, AddressPrefix: "addr1"},
	"solana":   {Symbol: "SOL", ExchangeRate: 0.0065, NetworkFee: 0.000005, AddressPrefix: "sol"},
}

// IsCardMethod reports whether method is a card variant.
func IsCardMethod(method string) bool { return cardMethods[method] }

// IsCryptoMethod reports whether method is a crypto variant.
func IsCryptoMethod(method string) bool {
	_, ok := cryptoMethods[method]
	return ok
}

// KnownMethod reports whether method is in the accepted enumeration.
func KnownMethod(method string) bool {
	if cardMethods[method] || transferMethods[method] {
		return true
	}
	if _, ok := cryptoMethods[method]; ok {
		return true
	}
	return method == "paypal" || method == "check"
}

// Window is a simulated processing-time range [Min, Min+Span).
type Window struct {
	Min  time.Duration
	Span time.Duration
}

// Default lookup tables. Unknown methods deliberately fall back to permissive
// defaults (zero fee, flat 3s window, 0.85 success) rather than erroring;
// the builder's allow-list gate runs before any of these lookups.
var (
	defaultFeeRates = map[string]float64{
		"card":          0.029,
		"credit-card":   0.029,
		"debit-card":    0.025,
		"bitcoin":       0.01,
		"ethereum":      0.01,
		"litecoin":      0.01,
		"dogecoin":      0.01,
		"cardano":       0.01,
		"solana":        0.01,
		"bank-transfer": 0.008,
		"wire-transfer": 0.015,
		"paypal":        0.034,
		"check":         0.005,
	}

	defaultSuccessRates = map[string]float64{
		"card":          0.95,
		"credit-card":   0.95,
		"debit-card":    0.96,
		"bitcoin":       0.90,
		"ethereum":      0.90,
		"litecoin":      0.92,
		"dogecoin":      0.92,
		"cardano":       0.92,
		"solana":        0.92,
		"bank-transfer": 0.97,
		"wire-transfer": 0.97,
		"paypal":        0.93,
		"check":         0.88,
	}

	defaultWindows = map[string]Window{
		"card":          {Min: 2000 * time.Millisecond, Span: 3000 * time.Millisecond},
		"credit-card":   {Min: 2000 * time.Millisecond, Span: 3000 * time.Millisecond},
		"debit-card":    {Min: 2000 * time.Millisecond, Span: 3000 * time.Millisecond},
		"bitcoin":       {Min: 10000 * time.Millisecond, Span: 20000 * time.Millisecond},
		"ethereum":      {Min: 5000 * time.Millisecond, Span: 10000 * time.Millisecond},
		"litecoin":      {Min: 4000 * time.Millisecond, Span: 8000 * time.Millisecond},
		"dogecoin":      {Min: 4000 * time.Millisecond, Span: 8000 * time.Millisecond},
		"cardano":       {Min: 4000 * time.Millisecond, Span: 8000 * time.Millisecond},
		"solana":        {Min: 2000 * time.Millisecond, Span: 3000 * time.Millisecond},
		"bank-transfer": {Min: 5000 * time.Millisecond, Span: 10000 * time.Millisecond},
		"wire-transfer": {Min: 5000 * time.Millisecond, Span: 10000 * time.Millisecond},
		"paypal":        {Min: 2000 * time.Millisecond, Span: 2000 * time.Millisecond},
		"check":         {Min: 8000 * time.Millisecond, Span: 12000 * time.Millisecond},
	}
)

const (
	defaultWindowFlat  = 3000 * time.Millisecond
	defaultSuccessRate = 0.85
)

// Tables resolves per-method fee rates, success rates, and processing
// windows, with optional overrides merged over the defaults.
type Tables struct {
	feeRates     map[string]float64
	successRates map[string]float64
}

// NewTables builds the lookup tables, merging any configured overrides.
// Override keys outside the known enumeration are accepted; the default-on-
// miss policy still applies to anything not present.
func NewTables(feeOverrides, successOverrides map[string]float64) *Tables {
	t := &Tables{
		feeRates:     make(map[string]float64, len(defaultFeeRates)),
		successRates: make(map[string]float64, len(defaultSuccessRates)),
	}
	for k, v := range defaultFeeRates {
		t.feeRates[k] = v
	}
	for k, v := range feeOverrides {
		t.feeRates[k] = v
	}
	for k, v := range defaultSuccessRates {
		t.successRates[k] = v
	}
	for k, v := range successOverrides {
		t.successRates[k] = v
	}
	return t
}

// FeeRate returns the processing-fee percentage for a method, 0 if unknown.
func (t *Tables) FeeRate(method string) float64 {
	return t.feeRates[method]
}

// SuccessRate returns the simulated success probability for a method.
func (t *Tables) SuccessRate(method string) float64 {
	if r, ok := t.successRates[method]; ok {
		return r
	}
	return defaultSuccessRate
}

// ProcessingWindow returns the simulated settlement-delay window for a method.
func (t *Tables) ProcessingWindow(method string) Window {
	if w, ok := defaultWindows[method]; ok {
		return w
	}
	return Window{Min: defaultWindowFlat}
}

// Crypto returns the conversion parameters for a crypto method.
func (t *Tables) Crypto(method string) (CryptoInfo, bool) {
	info, ok := cryptoMethods[method]
	return info, ok
}

// ConfirmationPrefix derives the confirmation-code prefix from the method
// family: CRYPTO, CARD, XFER, or the generic PAY.
func ConfirmationPrefix(method string) string {
	switch {
	case IsCryptoMethod(method):
		return "CRYPTO"
	case IsCardMethod(method):
		return "CARD"
	case transferMethods[method]:
		return "XFER"
	default:
		return "PAY"
	}
}

// Failure reasons keyed by method family. Unclassified methods fall back to
// the generic processing error.
var (
	cardFailureReasons = []string{
		"Card declined by issuing bank",
		"Insufficient funds",
		"Card expired",
		"Transaction flagged by fraud check",
	}
	cryptoFailureReasons = []string{
		"Network congestion, transaction dropped",
		"Wallet address rejected the transfer",
		"Insufficient network confirmations",
	}
	paypalFailureReasons = []string{
		"PayPal account could not be verified",
		"Payment declined by PayPal",
	}
	bankFailureReasons = []string{
		"Account verification failed",
		"Transfer rejected by receiving bank",
	}
	checkFailureReasons = []string{
		"Check verification failed",
		"Check returned unpaid",
	}
)

const genericFailureReason = "Payment processing error"

// FailureReasons returns the candidate failure reasons for a method.
func FailureReasons(method string) []string {
	switch {
	case IsCardMethod(method):
		return cardFailureReasons
	case IsCryptoMethod(method):
		return cryptoFailureReasons
	case method == "paypal":
		return paypalFailureReasons
	case transferMethods[method]:
		return bankFailureReasons
	case method == "check":
		return checkFailureReasons
	default:
		return []string{genericFailureReason}
	}
}
