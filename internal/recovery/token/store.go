package token

import (
	"context"
	"time"

	"storegate/pkg/domain"
	dErrors "storegate/pkg/domainerrors"
)

var (
	// ErrNotFound covers both never-issued and already-consumed tokens; the
	// store cannot tell them apart and the caller maps both to one message.
	ErrNotFound = dErrors.New(dErrors.CodeNotFound, "no reset token for identifier")
	ErrExpired  = dErrors.New(dErrors.CodeExpired, "reset token expired")
	ErrMismatch = dErrors.New(dErrors.CodeMismatch, "reset token mismatch")
)

// Record is the stored shape of an issued reset token.
type Record struct {
	Token    string
	IssuedAt time.Time
}

// Store persists issued tokens keyed by canonical identifier.
//
// Consume must be atomic per key: a matching, in-window token deletes the
// record and returns nil exactly once. A mismatch leaves the record in place
// so a correct retry can still succeed within the window.
type Store interface {
	Put(ctx context.Context, id domain.Identifier, rec Record, validity time.Duration) error
	Consume(ctx context.Context, id domain.Identifier, token string, validity time.Duration) error
	Delete(ctx context.Context, id domain.Identifier) error
}
