package token

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"storegate/pkg/domain"
)

// MemoryStore keeps issued tokens in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	tokens map[domain.Identifier]*Record
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tokens: make(map[domain.Identifier]*Record),
		now:    time.Now,
	}
}

func (s *MemoryStore) Put(ctx context.Context, id domain.Identifier, rec Record, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[id] = &rec
	return nil
}

func (s *MemoryStore) Consume(ctx context.Context, id domain.Identifier, token string, validity time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.tokens[id]
	if !ok {
		return ErrNotFound
	}
	if s.now().Sub(rec.IssuedAt) > validity {
		delete(s.tokens, id)
		return ErrExpired
	}
	if subtle.ConstantTimeCompare([]byte(rec.Token), []byte(token)) != 1 {
		// Leave the record so a correct retry can still succeed.
		return ErrMismatch
	}

	delete(s.tokens, id)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id domain.Identifier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, id)
	return nil
}
