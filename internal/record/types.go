// Package record defines the transaction and support-ticket types and the
// Store abstraction over their persistence backends.
package record

import "time"

// TransactionStatus is the lifecycle state of a payment transaction.
// "processing" is the initial, transient state; "completed" and "failed"
// are terminal and never transition again.
type TransactionStatus string

const (
	StatusProcessing TransactionStatus = "processing"
	StatusCompleted  TransactionStatus = "completed"
	StatusFailed     TransactionStatus = "failed"
)

// TicketType distinguishes contact-form tickets from quote requests.
type TicketType string

const (
	TicketContact TicketType = "contact"
	TicketQuote   TicketType = "quote"
)

// TicketStatus advances only through explicit admin action.
type TicketStatus string

const (
	TicketStatusNew        TicketStatus = "new"
	TicketStatusInProgress TicketStatus = "in-progress"
	TicketStatusClosed     TicketStatus = "closed"
)

// ValidTicketStatus reports whether s is a known ticket status.
func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusNew, TicketStatusInProgress, TicketStatusClosed:
		return true
	}
	return false
}

// ValidTransactionStatus reports whether s is a known transaction status.
func ValidTransactionStatus(s TransactionStatus) bool {
	switch s {
	case StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Customer is a denormalized copy of the payer's details taken at payment
// time. It is not a foreign key into any customer table.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Address string `json:"address,omitempty"`
}

// CardDetails holds the non-sensitive remainder of a card payment.
type CardDetails struct {
	Last4  string `json:"last4"`
	Brand  string `json:"brand"`
	Expiry string `json:"expiry"`
	Holder string `json:"holder"`
}

// CryptoDetails holds the simulated on-chain side of a crypto payment.
// NetworkFee is informational only and is never deducted from NetAmount.
type CryptoDetails struct {
	Symbol        string  `json:"symbol"`
	CryptoAmount  string  `json:"cryptoAmount"` // fixed-point, 8 decimal places
	WalletAddress string  `json:"walletAddress"`
	ExchangeRate  float64 `json:"exchangeRate"`
	NetworkFee    float64 `json:"networkFee"`
	TxHash        string  `json:"txHash,omitempty"`
}

// Transaction is a simulated payment. It is created in the processing state,
// receives exactly one terminal mutation from the resolver, and is never
// mutated again.
type Transaction struct {
	ID               string            `json:"id"`
	Amount           float64           `json:"amount"`
	Description      string            `json:"description,omitempty"`
	PaymentMethod    string            `json:"paymentMethod"`
	Customer         Customer          `json:"customerInfo"`
	Card             *CardDetails      `json:"card,omitempty"`
	Crypto           *CryptoDetails    `json:"crypto,omitempty"`
	Status           TransactionStatus `json:"status"`
	ProcessingFee    float64           `json:"processingFee"`
	NetAmount        float64           `json:"netAmount"`
	ConfirmationCode string            `json:"confirmationCode,omitempty"`
	FailureReason    string            `json:"failureReason,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	ProcessedAt      *time.Time        `json:"processedAt,omitempty"`
}

// SupportTicket is a contact or quote intake record.
type SupportTicket struct {
	ID        string       `json:"id"`
	Type      TicketType   `json:"type"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone,omitempty"`
	Company   string       `json:"company,omitempty"`
	Message   string       `json:"message"`
	Service   string       `json:"service,omitempty"`
	Budget    string       `json:"budget,omitempty"`
	Status    TicketStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
}
