package otp

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storegate/pkg/domain"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStore_ConsumeOnce(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestRedisStore(t)
	id := domain.Identifier("user@example.com")

	require.NoError(t, s.Put(ctx, id, Record{Code: "482913", ExpiresAt: time.Now().Add(5 * time.Minute)}, 5*time.Minute))

	require.NoError(t, s.Consume(ctx, id, "482913", DefaultMaxAttempts))
	assert.ErrorIs(t, s.Consume(ctx, id, "482913", DefaultMaxAttempts), ErrNotFound)
}

func TestRedisStore_Mismatch_LeavesRecord(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestRedisStore(t)
	id := domain.Identifier("user@example.com")

	require.NoError(t, s.Put(ctx, id, Record{Code: "482913", ExpiresAt: time.Now().Add(5 * time.Minute)}, 5*time.Minute))

	assert.ErrorIs(t, s.Consume(ctx, id, "000000", DefaultMaxAttempts), ErrMismatch)
	require.NoError(t, s.Consume(ctx, id, "482913", DefaultMaxAttempts), "correct retry still succeeds")
}

func TestRedisStore_AttemptCeiling(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestRedisStore(t)
	id := domain.Identifier("user@example.com")

	require.NoError(t, s.Put(ctx, id, Record{Code: "482913", ExpiresAt: time.Now().Add(5 * time.Minute)}, 5*time.Minute))

	for i := 0; i < DefaultMaxAttempts; i++ {
		assert.ErrorIs(t, s.Consume(ctx, id, "000000", DefaultMaxAttempts), ErrMismatch)
	}
	assert.ErrorIs(t, s.Consume(ctx, id, "482913", DefaultMaxAttempts), ErrTooManyAttempts)
}

func TestRedisStore_LogicalExpiry(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestRedisStore(t)
	id := domain.Identifier("user@example.com")

	require.NoError(t, s.Put(ctx, id, Record{Code: "482913", ExpiresAt: time.Now().Add(5 * time.Minute)}, 5*time.Minute))

	// Logical clock past the stored expiry while the key TTL still holds.
	s.now = func() time.Time { return time.Now().Add(6 * time.Minute) }

	assert.ErrorIs(t, s.Consume(ctx, id, "482913", DefaultMaxAttempts), ErrExpired)
	assert.ErrorIs(t, s.Consume(ctx, id, "482913", DefaultMaxAttempts), ErrNotFound)
}

func TestRedisStore_KeyTTLReclaims(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestRedisStore(t)
	id := domain.Identifier("user@example.com")

	require.NoError(t, s.Put(ctx, id, Record{Code: "482913", ExpiresAt: time.Now().Add(time.Minute)}, time.Minute))

	mr.FastForward(3 * time.Minute)

	assert.ErrorIs(t, s.Consume(ctx, id, "482913", DefaultMaxAttempts), ErrNotFound)
}

func TestRedisStore_PutSupersedes(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestRedisStore(t)
	id := domain.Identifier("user@example.com")

	require.NoError(t, s.Put(ctx, id, Record{Code: "111111", ExpiresAt: time.Now().Add(5 * time.Minute)}, 5*time.Minute))
	require.NoError(t, s.Put(ctx, id, Record{Code: "222222", ExpiresAt: time.Now().Add(5 * time.Minute)}, 5*time.Minute))

	assert.ErrorIs(t, s.Consume(ctx, id, "111111", DefaultMaxAttempts), ErrMismatch)
	require.NoError(t, s.Consume(ctx, id, "222222", DefaultMaxAttempts))
}
