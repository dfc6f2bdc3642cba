package record

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup or update targets an unknown id.
var ErrNotFound = errors.New("record not found")

// MaxListLimit caps admin listing page sizes.
const MaxListLimit = 200

// DefaultListLimit applies when a listing request gives no limit.
const DefaultListLimit = 50

// ListFilter narrows and orders listing results. Zero values mean "no filter".
type ListFilter struct {
	Status string // transaction or ticket status
	Type   string // tickets only: contact|quote
	Limit  int    // capped at MaxListLimit; DefaultListLimit when <= 0
	Skip   int    // records to skip before the page
	Sort   string // "asc" or "desc" by creation time; default desc
}

// Normalize clamps the filter to the supported limit range.
func (f ListFilter) Normalize() ListFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Skip < 0 {
		f.Skip = 0
	}
	if f.Sort != "asc" {
		f.Sort = "desc"
	}
	return f
}

// TransactionUpdate is a partial update applied at outcome resolution or by
// an admin status mutation. Nil fields are left untouched.
type TransactionUpdate struct {
	Status           *TransactionStatus
	ConfirmationCode *string
	FailureReason    *string
	TxHash           *string
	ProcessedAt      *time.Time
}

// DashboardStats aggregates the admin dashboard counters.
type DashboardStats struct {
	TotalTransactions     int     `json:"totalTransactions"`
	CompletedTransactions int     `json:"completedTransactions"`
	PendingTransactions   int     `json:"pendingTransactions"`
	TotalTickets          int     `json:"totalTickets"`
	NewTickets            int     `json:"newTickets"`
	GrossRevenue          float64 `json:"grossRevenue"`
	NetRevenue            float64 `json:"netRevenue"`
}

// Store is the persistence contract shared by the in-memory and sqlite
// backends. Callers must not be able to tell which backing is active; both
// guarantee that a read immediately after a write observes that write.
type Store interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id string) (*Transaction, error)
	UpdateTransaction(ctx context.Context, id string, upd TransactionUpdate) error
	ListTransactions(ctx context.Context, f ListFilter) ([]Transaction, error)

	CreateTicket(ctx context.Context, t *SupportTicket) error
	GetTicket(ctx context.Context, id string) (*SupportTicket, error)
	UpdateTicketStatus(ctx context.Context, id string, status TicketStatus) error
	ListTickets(ctx context.Context, f ListFilter) ([]SupportTicket, error)

	DashboardStats(ctx context.Context) (*DashboardStats, error)

	// Backend names the active backing ("memory" or "sqlite").
	Backend() string
	Close() error
}
