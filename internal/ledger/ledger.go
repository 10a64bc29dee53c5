// Package ledger tracks which draft orders have been fully processed and how
// many processing attempts each one has consumed. All state is
// memory-resident and cleared on a fixed interval to bound growth, so
// duplicate deliveries arriving more than one reset interval apart are
// reprocessed. That trade-off is deliberate.
package ledger

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultMaxAttempts   = 3
	DefaultRetryWindow   = 5 * time.Minute
	DefaultResetInterval = time.Hour
)

// Status classifies the outcome of a Check call.
type Status int

const (
	// StatusAllow means the delivery may proceed; an attempt was recorded.
	StatusAllow Status = iota
	// StatusDuplicate means the order already completed processing. Benign.
	StatusDuplicate
	// StatusRateLimited means the order exhausted its attempt cap.
	StatusRateLimited
)

// Decision is the result of consulting the ledger for one delivery.
type Decision struct {
	Status Status
	// Attempts is the attempt count including the one just recorded.
	// Valid when Status is StatusAllow or StatusRateLimited.
	Attempts int
	// InRetryWindow reports that this delivery arrived within the retry
	// window of the previous attempt. Informational only; it never blocks.
	InRetryWindow bool
}

type attemptInfo struct {
	attempts    int
	lastAttempt time.Time
}

// Ledger is the idempotency and retry store. The completed set and the
// attempt counters share one lifecycle: empty at start, cleared atomically
// by Reset.
type Ledger struct {
	mu          sync.Mutex
	completed   map[string]struct{}
	attempts    map[string]attemptInfo
	maxAttempts int
	retryWindow time.Duration
	nowFunc     func() time.Time
	logger      *zap.Logger
}

// New returns an empty ledger. maxAttempts caps processing attempts per
// order; retryWindow flags rapid redeliveries.
func New(maxAttempts int, retryWindow time.Duration, logger *zap.Logger) *Ledger {
	return &Ledger{
		completed:   make(map[string]struct{}),
		attempts:    make(map[string]attemptInfo),
		maxAttempts: maxAttempts,
		retryWindow: retryWindow,
		nowFunc:     time.Now,
		logger:      logger,
	}
}

// Check gates one delivery of the given order. Completed orders are rejected
// as duplicates without touching the attempt counter; orders at the attempt
// cap are rejected as rate-limited. Otherwise the attempt counter is
// incremented and stamped in the same critical section, so two sequential
// deliveries can never both observe a first-time allow.
func (l *Ledger) Check(orderID string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, done := l.completed[orderID]; done {
		return Decision{Status: StatusDuplicate}
	}

	info := l.attempts[orderID]
	if info.attempts >= l.maxAttempts {
		return Decision{Status: StatusRateLimited, Attempts: info.attempts}
	}

	now := l.nowFunc()
	inWindow := info.attempts > 0 && now.Sub(info.lastAttempt) < l.retryWindow

	info.attempts++
	info.lastAttempt = now
	l.attempts[orderID] = info

	return Decision{Status: StatusAllow, Attempts: info.attempts, InRetryWindow: inWindow}
}

// Complete marks the order as fully processed. Terminal until the next Reset.
func (l *Ledger) Complete(orderID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.completed[orderID] = struct{}{}
}

// Attempts returns the recorded attempt count for an order.
func (l *Ledger) Attempts(orderID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.attempts[orderID].attempts
}

// Reset clears the completed set and the attempt counters in one atomic step.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.completed = make(map[string]struct{})
	l.attempts = make(map[string]attemptInfo)
}

// RunResetLoop clears the ledger every interval until ctx is cancelled.
// Intended to be called in a goroutine from main.
func (l *Ledger) RunResetLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Reset()
			l.logger.Info("Processed draft order cache cleared")
		}
	}
}
