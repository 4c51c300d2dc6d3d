// Package token issues and consumes the short-lived reset tokens that prove
// a one-time code was already verified.
package token

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"time"

	"storegate/internal/recovery/models"
	"storegate/pkg/domain"
)

const (
	// DefaultValidity bounds token life, measured from issuance.
	DefaultValidity = 10 * time.Minute

	tokenBytes = 32
)

type Manager struct {
	store    Store
	validity time.Duration
	now      func() time.Time
}

type ManagerOption func(*Manager)

func WithValidity(d time.Duration) ManagerOption {
	return func(m *Manager) { m.validity = d }
}

func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

func NewManager(store Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:    store,
		validity: DefaultValidity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Issue mints a cryptographically random opaque token. Callers invoke this
// only in the same step that consumed the one-time code.
func (m *Manager) Issue(ctx context.Context, id domain.Identifier) (models.ResetToken, error) {
	buf := make([]byte, tokenBytes)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return models.ResetToken{}, fmt.Errorf("generate reset token: %w", err)
	}

	rec := Record{
		Token:    base64.RawURLEncoding.EncodeToString(buf),
		IssuedAt: m.now(),
	}
	if err := m.store.Put(ctx, id, rec, m.validity); err != nil {
		return models.ResetToken{}, err
	}

	return models.ResetToken{
		Identifier: id,
		Token:      rec.Token,
		IssuedAt:   rec.IssuedAt,
	}, nil
}

// Consume validates and destroys the token in one atomic step.
func (m *Manager) Consume(ctx context.Context, id domain.Identifier, token string) error {
	return m.store.Consume(ctx, id, token, m.validity)
}
