package otp

import (
	"context"
	"time"

	"storegate/pkg/domain"
	dErrors "storegate/pkg/domainerrors"
)

var (
	// ErrNotFound keeps storage-level misses consistent across memory and
	// redis implementations. A consumed code reads the same as a missing one.
	ErrNotFound        = dErrors.New(dErrors.CodeNotFound, "no pending code for identifier")
	ErrExpired         = dErrors.New(dErrors.CodeExpired, "code expired")
	ErrMismatch        = dErrors.New(dErrors.CodeMismatch, "code mismatch")
	ErrTooManyAttempts = dErrors.New(dErrors.CodeTooManyAttempts, "attempt limit reached")
)

// Record is the stored shape of a pending one-time code.
type Record struct {
	Code      string
	ExpiresAt time.Time
	Attempts  int
}

// Store persists pending codes keyed by canonical identifier.
//
// Consume is the whole verification step and must be atomic per key: the
// attempt counter increments before any check (a crash mid-verify still
// counts), the ceiling and expiry are enforced, and a matching code deletes
// the record so a concurrent second verify cannot also succeed.
type Store interface {
	// Put writes the record, overwriting any previous code for the identifier.
	Put(ctx context.Context, id domain.Identifier, rec Record, ttl time.Duration) error
	// Consume returns nil exactly once per stored code; otherwise one of
	// ErrNotFound, ErrExpired, ErrMismatch, ErrTooManyAttempts.
	Consume(ctx context.Context, id domain.Identifier, code string, maxAttempts int) error
	// Delete drops any pending code. Used by expiry sweeps; not required for
	// correctness since Consume re-checks expiry.
	Delete(ctx context.Context, id domain.Identifier) error
}
