package payment

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Kamaldeep-singh0/trego/internal/record"
)

// ValidationError marks a caller error: a malformed or incomplete payment
// request rejected before any record is created.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// CustomerInput carries the customer fields of a payment request. Name may
// arrive whole or split into first/last.
type CustomerInput struct {
	Name      string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Company   string
	Address   string
}

// resolveName returns the display name, assembling first/last when no whole
// name was given.
func (c CustomerInput) resolveName() string {
	if c.Name != "" {
		return c.Name
	}
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Request is a payment submission before validation. Amount is kept raw so
// the builder owns coercion.
type Request struct {
	Amount        string
	Description   string
	PaymentMethod string
	Customer      *CustomerInput

	// Card variant fields.
	CardNumber string
	ExpiryDate string
	CVV        string
	CardName   string

	// Crypto variant fields.
	WalletAddress string
	CryptoTxHash  string
}

// Builder validates payment requests and produces the initial processing
// transaction record.
type Builder struct {
	tables *Tables
	rand   Rand
	now    func() time.Time
}

// NewBuilder creates a Builder. now and r default to real time and the
// process random source when nil.
func NewBuilder(tables *Tables, r Rand, now func() time.Time) *Builder {
	if r == nil {
		r = SystemRand()
	}
	if now == nil {
		now = time.Now
	}
	return &Builder{tables: tables, rand: r, now: now}
}

// Build validates req and returns a new transaction in the processing state.
// All rejections are ValidationErrors; no partial state is left behind.
func (b *Builder) Build(req Request) (*record.Transaction, error) {
	if req.Amount == "" {
		return nil, validationErrorf("amount is required")
	}
	if req.PaymentMethod == "" {
		return nil, validationErrorf("payment method is required")
	}
	if req.Customer == nil {
		return nil, validationErrorf("customer info is required")
	}

	name := req.Customer.resolveName()
	if name == "" {
		return nil, validationErrorf("customer name is required")
	}
	if req.Customer.Email == "" {
		return nil, validationErrorf("customer email is required")
	}

	amount, err := strconv.ParseFloat(req.Amount, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, validationErrorf("invalid amount: %q", req.Amount)
	}
	if amount <= 0 {
		return nil, validationErrorf("amount must be greater than zero")
	}

	method := req.PaymentMethod
	// Strict allow-list gate; runs before any fee/rate table lookup.
	if !KnownMethod(method) {
		return nil, validationErrorf("unsupported payment method: %s", method)
	}

	fee := Round2(amount * b.tables.FeeRate(method))
	tx := &record.Transaction{
		ID:            b.newTransactionID(),
		Amount:        amount,
		Description:   req.Description,
		PaymentMethod: method,
		Customer: record.Customer{
			Name:    name,
			Email:   req.Customer.Email,
			Phone:   req.Customer.Phone,
			Company: req.Customer.Company,
			Address: req.Customer.Address,
		},
		Status:        record.StatusProcessing,
		ProcessingFee: fee,
		NetAmount:     Round2(amount - fee),
		CreatedAt:     b.now(),
	}

	switch {
	case IsCardMethod(method):
		card, err := buildCardDetails(req)
		if err != nil {
			return nil, err
		}
		tx.Card = card
	case IsCryptoMethod(method):
		if req.WalletAddress == "" {
			return nil, validationErrorf("wallet address is required for %s payments", method)
		}
		info, _ := b.tables.Crypto(method)
		tx.Crypto = &record.CryptoDetails{
			Symbol:        info.Symbol,
			CryptoAmount:  fmt.Sprintf("%.8f", amount*info.ExchangeRate),
			WalletAddress: req.WalletAddress,
			ExchangeRate:  info.ExchangeRate,
			NetworkFee:    info.NetworkFee,
			TxHash:        req.CryptoTxHash,
		}
	}

	return tx, nil
}

func (b *Builder) newTransactionID() string {
	return fmt.Sprintf("TXN_%d_%s", b.now().UnixMilli(), randChars(b.rand, base36Upper, 9))
}

func buildCardDetails(req Request) (*record.CardDetails, error) {
	if req.CardNumber == "" || req.ExpiryDate == "" || req.CVV == "" || req.CardName == "" {
		return nil, validationErrorf("card number, expiry date, cvv, and card name are all required")
	}
	digits := digitsOnly(req.CardNumber)
	if len(digits) < 13 {
		return nil, validationErrorf("card number is too short")
	}
	return &record.CardDetails{
		Last4:  digits[len(digits)-4:],
		Brand:  CardBrand(digits),
		Expiry: req.ExpiryDate,
		Holder: req.CardName,
	}, nil
}

// CardBrand classifies a card number by its leading digits. This is a prefix
// classifier only; no Luhn checksum is performed anywhere.
func CardBrand(digits string) string {
	if len(digits) < 2 {
		return "Unknown"
	}
	two, _ := strconv.Atoi(digits[:2])
	switch {
	case digits[0] == '4':
		return "Visa"
	case two >= 51 && two <= 55:
		return "Mastercard"
	case two == 34 || two == 37:
		return "American Express"
	case two == 60 || two == 65:
		return "Discover"
	default:
		return "Unknown"
	}
}

func digitsOnly(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Round2 rounds to two decimal places, the currency precision used for fees
// and net amounts.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
