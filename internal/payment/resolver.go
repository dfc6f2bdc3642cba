package payment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Kamaldeep-singh0/trego/internal/record"
)

// Notifier sends a best-effort confirmation for a completed transaction.
// Failures never affect transaction status.
type Notifier interface {
	Notify(ctx context.Context, tx *record.Transaction) bool
}

// Scheduler defers a function by a duration. The real implementation uses
// time.AfterFunc; tests substitute one that fires on demand.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }

// TimerScheduler returns the real, timer-backed scheduler.
func TimerScheduler() Scheduler { return timerScheduler{} }

// Resolver flips processing transactions to a terminal status after a
// method-dependent randomized delay. Each transaction is resolved exactly
// once; there is no cancellation and no retry.
type Resolver struct {
	store    record.Store
	notifier Notifier
	tables   *Tables
	sched    Scheduler
	rand     Rand
	now      func() time.Time
	logger   *slog.Logger
}

// NewResolver wires a resolver. sched, r, and now default to the real timer
// scheduler, process random source, and real time when nil.
func NewResolver(store record.Store, notifier Notifier, tables *Tables, sched Scheduler, r Rand, now func() time.Time, logger *slog.Logger) *Resolver {
	if sched == nil {
		sched = TimerScheduler()
	}
	if r == nil {
		r = SystemRand()
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		store:    store,
		notifier: notifier,
		tables:   tables,
		sched:    sched,
		rand:     r,
		now:      now,
		logger:   logger,
	}
}

// Schedule queues a one-shot resolution for the transaction after a delay
// drawn uniformly from the method's processing window. Returns the drawn
// delay.
func (r *Resolver) Schedule(id, method string) time.Duration {
	w := r.tables.ProcessingWindow(method)
	delay := w.Min
	if w.Span > 0 {
		delay += time.Duration(r.rand.IntN(int(w.Span)))
	}
	r.sched.AfterFunc(delay, func() {
		r.Resolve(context.Background(), id)
	})
	r.logger.Debug("resolution scheduled", "transaction_id", id, "method", method, "delay", delay)
	return delay
}

// Resolve performs the terminal transition for a transaction. A second fire
// on an already-terminal transaction is a no-op, and a missing record is
// silently skipped; neither is an error.
func (r *Resolver) Resolve(ctx context.Context, id string) {
	tx, err := r.store.GetTransaction(ctx, id)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			r.logger.Debug("transaction gone before resolution, skipping", "transaction_id", id)
			return
		}
		r.logger.Error("load transaction for resolution", "transaction_id", id, "err", err)
		return
	}
	if tx.Status != record.StatusProcessing {
		return
	}

	processedAt := r.now()
	upd := record.TransactionUpdate{ProcessedAt: &processedAt}

	succeeded := r.rand.Float64() < r.tables.SuccessRate(tx.PaymentMethod)
	if succeeded {
		status := record.StatusCompleted
		code := r.confirmationCode(tx.PaymentMethod)
		upd.Status = &status
		upd.ConfirmationCode = &code
		tx.Status = status
		tx.ConfirmationCode = code
		tx.ProcessedAt = &processedAt

		if tx.Crypto != nil && tx.Crypto.TxHash == "" {
			hash := r.transactionHash(tx.PaymentMethod)
			upd.TxHash = &hash
			tx.Crypto.TxHash = hash
		}
	} else {
		status := record.StatusFailed
		reason := r.failureReason(tx.PaymentMethod)
		upd.Status = &status
		upd.FailureReason = &reason
		tx.Status = status
		tx.FailureReason = reason
		tx.ProcessedAt = &processedAt
	}

	// An update failure is logged but does not stop the outcome: the
	// in-memory view of the transaction still reflects it.
	if err := r.store.UpdateTransaction(ctx, id, upd); err != nil {
		r.logger.Error("persist resolution", "transaction_id", id, "status", tx.Status, "err", err)
	}

	r.logger.Info("transaction resolved",
		"transaction_id", id,
		"method", tx.PaymentMethod,
		"status", tx.Status,
	)

	if succeeded && r.notifier != nil {
		r.notifier.Notify(ctx, tx)
	}
}

func (r *Resolver) confirmationCode(method string) string {
	return ConfirmationPrefix(method) + "-" + randChars(r.rand, base36Upper, 8)
}

func (r *Resolver) transactionHash(method string) string {
	info, _ := r.tables.Crypto(method)
	return info.AddressPrefix + randChars(r.rand, base36Lower, 30)
}

func (r *Resolver) failureReason(method string) string {
	reasons := FailureReasons(method)
	return reasons[r.rand.IntN(len(reasons))]
}
