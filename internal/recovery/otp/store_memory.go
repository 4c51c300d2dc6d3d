package otp

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"storegate/pkg/domain"
)

// MemoryStore keeps pending codes in process memory. Suitable for a single
// instance; distributed deployments use RedisStore.
type MemoryStore struct {
	mu    sync.Mutex
	codes map[domain.Identifier]*Record
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		codes: make(map[domain.Identifier]*Record),
		now:   time.Now,
	}
}

func (s *MemoryStore) Put(ctx context.Context, id domain.Identifier, rec Record, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[id] = &rec
	return nil
}

// Consume holds the lock across the whole check-and-mutate so concurrent
// verifies for one identifier serialize and at most one can succeed.
func (s *MemoryStore) Consume(ctx context.Context, id domain.Identifier, code string, maxAttempts int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.codes[id]
	if !ok {
		return ErrNotFound
	}

	// Count the attempt before any check.
	rec.Attempts++

	if rec.Attempts > maxAttempts {
		return ErrTooManyAttempts
	}
	if s.now().After(rec.ExpiresAt) {
		delete(s.codes, id)
		return ErrExpired
	}
	if subtle.ConstantTimeCompare([]byte(rec.Code), []byte(code)) != 1 {
		return ErrMismatch
	}

	delete(s.codes, id)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id domain.Identifier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, id)
	return nil
}

// Sweep reclaims expired records. Optional; Consume re-checks expiry anyway.
func (s *MemoryStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, rec := range s.codes {
		if now.After(rec.ExpiresAt) {
			delete(s.codes, id)
		}
	}
}
