//go:build integration

package otp_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"storegate/internal/recovery/otp"
	"storegate/pkg/domain"
	"storegate/pkg/testutil/containers"
)

// Exercises the consume script against a real Redis server, not miniredis,
// so the Lua path is covered end to end.
type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *otp.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = otp.NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestConsumeOnce() {
	ctx := context.Background()
	id := domain.Identifier("user@example.com")

	rec := otp.Record{Code: "482913", ExpiresAt: time.Now().Add(5 * time.Minute)}
	s.Require().NoError(s.store.Put(ctx, id, rec, 5*time.Minute))

	s.Require().NoError(s.store.Consume(ctx, id, "482913", 5))
	s.ErrorIs(s.store.Consume(ctx, id, "482913", 5), otp.ErrNotFound)
}

func (s *RedisStoreSuite) TestAttemptCeiling() {
	ctx := context.Background()
	id := domain.Identifier("user@example.com")

	rec := otp.Record{Code: "482913", ExpiresAt: time.Now().Add(5 * time.Minute)}
	s.Require().NoError(s.store.Put(ctx, id, rec, 5*time.Minute))

	for i := 0; i < 5; i++ {
		s.ErrorIs(s.store.Consume(ctx, id, "000000", 5), otp.ErrMismatch)
	}
	s.ErrorIs(s.store.Consume(ctx, id, "482913", 5), otp.ErrTooManyAttempts,
		"the correct code is rejected once the ceiling is reached")
}

func (s *RedisStoreSuite) TestConcurrentConsumeSingleSuccess() {
	ctx := context.Background()
	id := domain.Identifier("user@example.com")

	rec := otp.Record{Code: "482913", ExpiresAt: time.Now().Add(5 * time.Minute)}
	s.Require().NoError(s.store.Put(ctx, id, rec, 5*time.Minute))

	const workers = 16
	var wg sync.WaitGroup
	successes := make(chan struct{}, workers)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if s.store.Consume(ctx, id, "482913", workers+1) == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	count := 0
	for range successes {
		count++
	}
	s.Equal(1, count, "exactly one concurrent consume may succeed")
}
