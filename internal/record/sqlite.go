package record

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore is the durable record-store backend. Customer and
// payment-detail fields are stored as JSON documents alongside the indexed
// columns used for filtering and aggregation.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) a SQLite database at the given path and
// ensures the schema exists.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			amount REAL NOT NULL,
			description TEXT,
			payment_method TEXT NOT NULL,
			customer TEXT NOT NULL,
			card TEXT,
			crypto TEXT,
			status TEXT NOT NULL,
			processing_fee REAL NOT NULL,
			net_amount REAL NOT NULL,
			confirmation_code TEXT,
			failure_reason TEXT,
			created_at DATETIME NOT NULL,
			processed_at DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_status ON transactions(status)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_created_at ON transactions(created_at)`,

		`CREATE TABLE IF NOT EXISTS tickets (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT,
			company TEXT,
			message TEXT NOT NULL,
			service TEXT,
			budget TEXT,
			status TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tickets_status ON tickets(status)`,
		`CREATE INDEX IF NOT EXISTS idx_tickets_type ON tickets(type)`,
		`CREATE INDEX IF NOT EXISTS idx_tickets_created_at ON tickets(created_at)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// sqliteTimeFormat is a fixed-width UTC encoding: the fractional part is
// never trimmed, so lexicographic TEXT ordering matches chronological
// ordering in ORDER BY created_at.
const sqliteTimeFormat = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeFormat)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func (s *SQLiteStore) Backend() string { return "sqlite" }

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) CreateTransaction(ctx context.Context, tx *Transaction) error {
	customer, err := json.Marshal(tx.Customer)
	if err != nil {
		return fmt.Errorf("marshal customer: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO transactions
		(id, amount, description, payment_method, customer, card, crypto,
		 status, processing_fee, net_amount, confirmation_code, failure_reason,
		 created_at, processed_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		tx.ID, tx.Amount, tx.Description, tx.PaymentMethod, string(customer),
		marshalNullable(tx.Card), marshalNullable(tx.Crypto),
		string(tx.Status), tx.ProcessingFee, tx.NetAmount,
		nullString(tx.ConfirmationCode), nullString(tx.FailureReason),
		formatTime(tx.CreatedAt), formatNullableTime(tx.ProcessedAt),
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetTransaction(ctx context.Context, id string) (*Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, amount, description, payment_method, customer, card, crypto,
		        status, processing_fee, net_amount, confirmation_code,
		        failure_reason, created_at, processed_at
		 FROM transactions WHERE id = ?`, id)
	return scanTransaction(row.Scan)
}

func (s *SQLiteStore) UpdateTransaction(ctx context.Context, id string, upd TransactionUpdate) error {
	var sets []string
	var args []any

	if upd.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*upd.Status))
	}
	if upd.ConfirmationCode != nil {
		sets = append(sets, "confirmation_code = ?")
		args = append(args, *upd.ConfirmationCode)
	}
	if upd.FailureReason != nil {
		sets = append(sets, "failure_reason = ?")
		args = append(args, *upd.FailureReason)
	}
	if upd.ProcessedAt != nil {
		sets = append(sets, "processed_at = ?")
		args = append(args, formatTime(*upd.ProcessedAt))
	}
	if upd.TxHash != nil {
		sets = append(sets, "crypto = json_set(COALESCE(crypto, '{}'), '$.txHash', ?)")
		args = append(args, *upd.TxHash)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	res, err := s.db.ExecContext(ctx,
		"UPDATE transactions SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) ListTransactions(ctx context.Context, f ListFilter) ([]Transaction, error) {
	f = f.Normalize()
	where := ""
	var args []any
	if f.Status != "" {
		where = " WHERE status = ?"
		args = append(args, f.Status)
	}

	order := " ORDER BY created_at DESC"
	if f.Sort == "asc" {
		order = " ORDER BY created_at ASC"
	}
	args = append(args, f.Limit, f.Skip)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, amount, description, payment_method, customer, card, crypto,
		        status, processing_fee, net_amount, confirmation_code,
		        failure_reason, created_at, processed_at
		 FROM transactions`+where+order+" LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	txns := []Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txns = append(txns, *tx)
	}
	return txns, rows.Err()
}

func (s *SQLiteStore) CreateTicket(ctx context.Context, t *SupportTicket) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tickets
		(id, type, name, email, phone, company, message, service, budget, status, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		t.ID, string(t.Type), t.Name, t.Email, t.Phone, t.Company,
		t.Message, t.Service, t.Budget, string(t.Status),
		formatTime(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetTicket(ctx context.Context, id string) (*SupportTicket, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, type, name, email, phone, company, message, service, budget,
		        status, created_at
		 FROM tickets WHERE id = ?`, id)
	return scanTicket(row.Scan)
}

func (s *SQLiteStore) UpdateTicketStatus(ctx context.Context, id string, status TicketStatus) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE tickets SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return fmt.Errorf("update ticket: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) ListTickets(ctx context.Context, f ListFilter) ([]SupportTicket, error) {
	f = f.Normalize()
	var clauses []string
	var args []any
	if f.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, f.Status)
	}
	if f.Type != "" {
		clauses = append(clauses, "type = ?")
		args = append(args, f.Type)
	}
	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	order := " ORDER BY created_at DESC"
	if f.Sort == "asc" {
		order = " ORDER BY created_at ASC"
	}
	args = append(args, f.Limit, f.Skip)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, name, email, phone, company, message, service, budget,
		        status, created_at
		 FROM tickets`+where+order+" LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, fmt.Errorf("query tickets: %w", err)
	}
	defer rows.Close()

	tickets := []SupportTicket{}
	for rows.Next() {
		t, err := scanTicket(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, *t)
	}
	return tickets, rows.Err()
}

func (s *SQLiteStore) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status='completed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status='processing' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status='completed' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status='completed' THEN net_amount ELSE 0 END), 0)
		FROM transactions
	`).Scan(&stats.TotalTransactions, &stats.CompletedTransactions,
		&stats.PendingTransactions, &stats.GrossRevenue, &stats.NetRevenue)
	if err != nil {
		return nil, fmt.Errorf("transaction stats: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status='new' THEN 1 ELSE 0 END), 0)
		FROM tickets
	`).Scan(&stats.TotalTickets, &stats.NewTickets)
	if err != nil {
		return nil, fmt.Errorf("ticket stats: %w", err)
	}
	return stats, nil
}

// --- helpers ---

func marshalNullable(v any) any {
	switch t := v.(type) {
	case *CardDetails:
		if t == nil {
			return nil
		}
	case *CryptoDetails:
		if t == nil {
			return nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return string(data)
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func formatNullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

type scanFunc func(dest ...any) error

func scanTransaction(scan scanFunc) (*Transaction, error) {
	var tx Transaction
	var status, createdAt, customer string
	var description, card, crypto, code, reason, processedAt sql.NullString

	err := scan(
		&tx.ID, &tx.Amount, &description, &tx.PaymentMethod, &customer,
		&card, &crypto, &status, &tx.ProcessingFee, &tx.NetAmount,
		&code, &reason, &createdAt, &processedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	tx.Description = description.String
	tx.Status = TransactionStatus(status)
	tx.ConfirmationCode = code.String
	tx.FailureReason = reason.String
	if err := json.Unmarshal([]byte(customer), &tx.Customer); err != nil {
		return nil, fmt.Errorf("unmarshal customer: %w", err)
	}
	if card.Valid {
		tx.Card = &CardDetails{}
		if err := json.Unmarshal([]byte(card.String), tx.Card); err != nil {
			return nil, fmt.Errorf("unmarshal card: %w", err)
		}
	}
	if crypto.Valid {
		tx.Crypto = &CryptoDetails{}
		if err := json.Unmarshal([]byte(crypto.String), tx.Crypto); err != nil {
			return nil, fmt.Errorf("unmarshal crypto: %w", err)
		}
	}
	tx.CreatedAt = parseTime(createdAt)
	if processedAt.Valid {
		t := parseTime(processedAt.String)
		tx.ProcessedAt = &t
	}
	return &tx, nil
}

func scanTicket(scan scanFunc) (*SupportTicket, error) {
	var t SupportTicket
	var typ, status, createdAt string
	var phone, company, service, budget sql.NullString

	err := scan(
		&t.ID, &typ, &t.Name, &t.Email, &phone, &company,
		&t.Message, &service, &budget, &status, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	t.Type = TicketType(typ)
	t.Status = TicketStatus(status)
	t.Phone = phone.String
	t.Company = company.String
	t.Service = service.String
	t.Budget = budget.String
	t.CreatedAt = parseTime(createdAt)
	return &t, nil
}
