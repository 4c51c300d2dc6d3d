package token

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

func TestRedisStore_ConsumeExactlyOnce(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestRedisStore(t)
	id := domain.Identifier("user@example.com")

	require.NoError(t, s.Put(ctx, id, Record{Token: "tok-1", IssuedAt: time.Now()}, validity))

	require.NoError(t, s.Consume(ctx, id, "tok-1", validity))
	assert.ErrorIs(t, s.Consume(ctx, id, "tok-1", validity), ErrNotFound)
}

func TestRedisStore_MismatchLeavesToken(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestRedisStore(t)
	id := domain.Identifier("user@example.com")

	require.NoError(t, s.Put(ctx, id, Record{Token: "tok-1", IssuedAt: time.Now()}, validity))

	assert.ErrorIs(t, s.Consume(ctx, id, "wrong", validity), ErrMismatch)
	require.NoError(t, s.Consume(ctx, id, "tok-1", validity))
}

func TestRedisStore_ValidityFromIssuance(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestRedisStore(t)
	id := domain.Identifier("user@example.com")

	require.NoError(t, s.Put(ctx, id, Record{Token: "tok-1", IssuedAt: time.Now()}, validity))

	s.now = func() time.Time { return time.Now().Add(validity + time.Second) }
	assert.ErrorIs(t, s.Consume(ctx, id, "tok-1", validity), ErrExpired)
}

func TestRedisStore_KeyTTLReclaims(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestRedisStore(t)
	id := domain.Identifier("user@example.com")

	require.NoError(t, s.Put(ctx, id, Record{Token: "tok-1", IssuedAt: time.Now()}, time.Minute))

	mr.FastForward(5 * time.Minute)
	assert.ErrorIs(t, s.Consume(ctx, id, "tok-1", time.Minute), ErrNotFound)
}
