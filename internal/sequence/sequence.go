// Package sequence allocates per-day order numbers. Allocation is one atomic
// upsert-increment against a counter row, never a read-then-write pair, so
// concurrent order creations can't be handed the same number.
package sequence

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"sellnow/internal/domain"
)

const (
	// Prefix starts every order number, e.g. SN250601001.
	Prefix = "SN"

	dateLayout  = "060102" // YYMMDD
	maxAttempts = 3
	retryDelay  = 50 * time.Millisecond
)

type Allocator struct{ db *sqlx.DB }

func NewAllocator(db *sqlx.DB) *Allocator { return &Allocator{db: db} }

// Next returns the next sequence value for the given day, creating the
// counter at 1 on the first order of a new day. The increment and the read
// happen in a single statement; the counter is never decremented or reset
// except by date rollover to a fresh key.
func (a *Allocator) Next(day time.Time) (int64, error) {
	var n int64
	err := a.db.Get(&n, `
		INSERT INTO order_sequences(seq_date, counter)
		VALUES (?, 1)
		ON CONFLICT(seq_date) DO UPDATE SET counter = counter + 1
		RETURNING counter
	`, day.Format(dateLayout))
	if err != nil {
		return 0, err
	}
	return n, nil
}

// NextNumber allocates and formats the next order number for the given day,
// retrying transient store failures a bounded number of times before giving
// up with a SequenceAllocationError.
func (a *Allocator) NextNumber(day time.Time) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		n, err := a.Next(day)
		if err == nil {
			return Number(day, n), nil
		}
		lastErr = err
		time.Sleep(retryDelay * time.Duration(attempt))
	}
	return "", &domain.SequenceAllocationError{Attempts: maxAttempts, Err: lastErr}
}

// Number formats a sequence value as an order number: prefix, YYMMDD, and
// the value zero-padded to three digits. Past 999 the sequence continues
// unpadded; daily order volume is not capped.
func Number(day time.Time, n int64) string {
	return fmt.Sprintf("%s%s%03d", Prefix, day.Format(dateLayout), n)
}
