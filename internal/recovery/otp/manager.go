// Package otp manages the one-time code lifecycle: mint, persist, verify,
// expire, and single-use invalidate, all keyed by canonical identifier.
package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"storegate/internal/recovery/models"
	"storegate/pkg/domain"
)

const (
	// DefaultDigits is the fixed code length sent to users.
	DefaultDigits = 6
	// DefaultTTL bounds how long a code stays valid after request.
	DefaultTTL = 5 * time.Minute
	// DefaultMaxAttempts is the verification ceiling per code.
	DefaultMaxAttempts = 5
)

// Manager owns code generation policy; atomicity lives in the Store.
type Manager struct {
	store       Store
	digits      int
	ttl         time.Duration
	maxAttempts int
	now         func() time.Time
}

type ManagerOption func(*Manager)

func WithTTL(ttl time.Duration) ManagerOption {
	return func(m *Manager) { m.ttl = ttl }
}

func WithMaxAttempts(n int) ManagerOption {
	return func(m *Manager) { m.maxAttempts = n }
}

func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

func NewManager(store Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:       store,
		digits:      DefaultDigits,
		ttl:         DefaultTTL,
		maxAttempts: DefaultMaxAttempts,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTL exposes the configured validity window for messaging.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Request mints a fresh fixed-length numeric code and persists it, replacing
// any unconsumed code for the same identifier.
func (m *Manager) Request(ctx context.Context, id domain.Identifier) (models.OneTimeCode, error) {
	code, err := generateNumericCode(m.digits)
	if err != nil {
		return models.OneTimeCode{}, fmt.Errorf("generate code: %w", err)
	}

	rec := Record{
		Code:      code,
		ExpiresAt: m.now().Add(m.ttl),
	}
	if err := m.store.Put(ctx, id, rec, m.ttl); err != nil {
		return models.OneTimeCode{}, err
	}

	return models.OneTimeCode{
		Identifier: id,
		Code:       code,
		ExpiresAt:  rec.ExpiresAt,
	}, nil
}

// Verify consumes the pending code. A nil return means the code matched and
// is now invalidated; the coded errors come straight from the store.
func (m *Manager) Verify(ctx context.Context, id domain.Identifier, code string) error {
	return m.store.Consume(ctx, id, code, m.maxAttempts)
}

func generateNumericCode(digits int) (string, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}
