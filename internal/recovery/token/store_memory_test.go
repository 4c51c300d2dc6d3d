package token

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storegate/pkg/domain"
)

const validity = 10 * time.Minute

func newTestMemoryStore(now *time.Time) *MemoryStore {
	s := NewMemoryStore()
	s.now = func() time.Time { return *now }
	return s
}

func TestMemoryStore_ConsumeExactlyOnce(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	s := newTestMemoryStore(&now)
	id := domain.Identifier("user@example.com")

	require.NoError(t, s.Put(ctx, id, Record{Token: "tok-1", IssuedAt: now}, validity))

	require.NoError(t, s.Consume(ctx, id, "tok-1", validity))

	// Second consume with the identical token fails even within the window.
	assert.ErrorIs(t, s.Consume(ctx, id, "tok-1", validity), ErrNotFound)
}

func TestMemoryStore_MismatchLeavesToken(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	s := newTestMemoryStore(&now)
	id := domain.Identifier("user@example.com")

	require.NoError(t, s.Put(ctx, id, Record{Token: "tok-1", IssuedAt: now}, validity))

	assert.ErrorIs(t, s.Consume(ctx, id, "wrong", validity), ErrMismatch)
	require.NoError(t, s.Consume(ctx, id, "tok-1", validity), "correct retry after a bad attempt succeeds")
}

func TestMemoryStore_ValidityFromIssuance(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	s := newTestMemoryStore(&now)
	id := domain.Identifier("user@example.com")

	require.NoError(t, s.Put(ctx, id, Record{Token: "tok-1", IssuedAt: now}, validity))

	now = now.Add(validity + time.Second)
	assert.ErrorIs(t, s.Consume(ctx, id, "tok-1", validity), ErrExpired)
	assert.ErrorIs(t, s.Consume(ctx, id, "tok-1", validity), ErrNotFound)
}

func TestManager_IssueOpaqueUniqueTokens(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore())

	a, err := m.Issue(ctx, "a@example.com")
	require.NoError(t, err)
	b, err := m.Issue(ctx, "b@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, a.Token, b.Token)
	assert.GreaterOrEqual(t, len(a.Token), 40, "32 random bytes encode to 43 chars")
	require.NoError(t, m.Consume(ctx, "a@example.com", a.Token))
}

func TestManager_ReissueSupersedes(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore())
	id := domain.Identifier("user@example.com")

	first, err := m.Issue(ctx, id)
	require.NoError(t, err)
	second, err := m.Issue(ctx, id)
	require.NoError(t, err)

	assert.ErrorIs(t, m.Consume(ctx, id, first.Token), ErrMismatch)
	require.NoError(t, m.Consume(ctx, id, second.Token))
}
