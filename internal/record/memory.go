package record

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps all records in process, in insertion order. It stands in
// transparently when no database path is configured, with the same
// filter/sort/paginate semantics as the sqlite backend.
type MemoryStore struct {
	mu           sync.RWMutex
	transactions map[string]Transaction
	tickets      map[string]SupportTicket
	txOrder      []string
	ticketOrder  []string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transactions: make(map[string]Transaction),
		tickets:      make(map[string]SupportTicket),
	}
}

func (s *MemoryStore) Backend() string { return "memory" }

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) CreateTransaction(_ context.Context, tx *Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.transactions[tx.ID]; !exists {
		s.txOrder = append(s.txOrder, tx.ID)
	}
	s.transactions[tx.ID] = *tx
	return nil
}

func (s *MemoryStore) GetTransaction(_ context.Context, id string) (*Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tx, ok := s.transactions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &tx, nil
}

func (s *MemoryStore) UpdateTransaction(_ context.Context, id string, upd TransactionUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.transactions[id]
	if !ok {
		return ErrNotFound
	}
	if upd.Status != nil {
		tx.Status = *upd.Status
	}
	if upd.ConfirmationCode != nil {
		tx.ConfirmationCode = *upd.ConfirmationCode
	}
	if upd.FailureReason != nil {
		tx.FailureReason = *upd.FailureReason
	}
	if upd.TxHash != nil && tx.Crypto != nil {
		crypto := *tx.Crypto
		crypto.TxHash = *upd.TxHash
		tx.Crypto = &crypto
	}
	if upd.ProcessedAt != nil {
		t := *upd.ProcessedAt
		tx.ProcessedAt = &t
	}
	s.transactions[id] = tx
	return nil
}

func (s *MemoryStore) ListTransactions(_ context.Context, f ListFilter) ([]Transaction, error) {
	f = f.Normalize()
	s.mu.RLock()
	matched := make([]Transaction, 0, len(s.txOrder))
	for _, id := range s.txOrder {
		tx := s.transactions[id]
		if f.Status != "" && string(tx.Status) != f.Status {
			continue
		}
		matched = append(matched, tx)
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if f.Sort == "asc" {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[j].CreatedAt.Before(matched[i].CreatedAt)
	})
	return pageOf(matched, f), nil
}

func (s *MemoryStore) CreateTicket(_ context.Context, t *SupportTicket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tickets[t.ID]; !exists {
		s.ticketOrder = append(s.ticketOrder, t.ID)
	}
	s.tickets[t.ID] = *t
	return nil
}

func (s *MemoryStore) GetTicket(_ context.Context, id string) (*SupportTicket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tickets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (s *MemoryStore) UpdateTicketStatus(_ context.Context, id string, status TicketStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	if !ok {
		return ErrNotFound
	}
	t.Status = status
	s.tickets[id] = t
	return nil
}

func (s *MemoryStore) ListTickets(_ context.Context, f ListFilter) ([]SupportTicket, error) {
	f = f.Normalize()
	s.mu.RLock()
	matched := make([]SupportTicket, 0, len(s.ticketOrder))
	for _, id := range s.ticketOrder {
		t := s.tickets[id]
		if f.Status != "" && string(t.Status) != f.Status {
			continue
		}
		if f.Type != "" && string(t.Type) != f.Type {
			continue
		}
		matched = append(matched, t)
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if f.Sort == "asc" {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[j].CreatedAt.Before(matched[i].CreatedAt)
	})
	return pageOf(matched, f), nil
}

func (s *MemoryStore) DashboardStats(_ context.Context) (*DashboardStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := &DashboardStats{
		TotalTransactions: len(s.transactions),
		TotalTickets:      len(s.tickets),
	}
	for _, tx := range s.transactions {
		switch tx.Status {
		case StatusCompleted:
			stats.CompletedTransactions++
			stats.GrossRevenue += tx.Amount
			stats.NetRevenue += tx.NetAmount
		case StatusProcessing:
			stats.PendingTransactions++
		}
	}
	for _, t := range s.tickets {
		if t.Status == TicketStatusNew {
			stats.NewTickets++
		}
	}
	return stats, nil
}

// pageOf applies skip/limit to an already filtered and sorted slice.
func pageOf[T any](items []T, f ListFilter) []T {
	if f.Skip >= len(items) {
		return []T{}
	}
	items = items[f.Skip:]
	if len(items) > f.Limit {
		items = items[:f.Limit]
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}
