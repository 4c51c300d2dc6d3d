package store

import (
	"context"
	"sync"

	"storegate/internal/identity"
	"storegate/pkg/domain"
)

// MemoryStore backs the user store for tests and single-instance development.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[domain.Identifier]identity.UserCredential
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[domain.Identifier]identity.UserCredential)}
}

func (s *MemoryStore) GetByIdentifier(ctx context.Context, id domain.Identifier) (identity.UserCredential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return identity.UserCredential{}, ErrNotFound
	}
	return user, nil
}

func (s *MemoryStore) UpdatePasswordHash(ctx context.Context, id domain.Identifier, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	user.PasswordHash = hash
	s.users[id] = user
	return nil
}

func (s *MemoryStore) UpdateRole(ctx context.Context, id domain.Identifier, role domain.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	user.Role = role
	s.users[id] = user
	return nil
}

func (s *MemoryStore) Save(ctx context.Context, user identity.UserCredential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.Identifier] = user
	return nil
}
