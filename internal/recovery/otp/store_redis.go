package otp

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"storegate/pkg/domain"
)

var consumeDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "storegate_otp_consume_duration_ms",
	Help:    "Latency of one-time code verification in milliseconds",
	Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
})

const otpKeyPrefix = "pr:otp:"

// consumeScript runs the whole verification atomically server-side: bump the
// attempt counter first, then enforce ceiling, expiry, and equality, deleting
// the record only on a match. Two racing verifies can never both see "ok".
var consumeScript = redis.NewScript(`
local code = redis.call('HGET', KEYS[1], 'code')
if not code then
  return 'not_found'
end
local attempts = redis.call('HINCRBY', KEYS[1], 'attempts', 1)
if attempts > tonumber(ARGV[2]) then
  return 'too_many_attempts'
end
local expires = tonumber(redis.call('HGET', KEYS[1], 'expires_at'))
if tonumber(ARGV[3]) > expires then
  redis.call('DEL', KEYS[1])
  return 'expired'
end
if code ~= ARGV[1] then
  return 'mismatch'
end
redis.call('DEL', KEYS[1])
return 'ok'
`)

// RedisStore is the distributed implementation, sharing pending codes across
// instances. Records expire server-side via key TTL.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func (s *RedisStore) key(id domain.Identifier) string {
	return otpKeyPrefix + id.String()
}

func (s *RedisStore) Put(ctx context.Context, id domain.Identifier, rec Record, ttl time.Duration) error {
	key := s.key(id)
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key,
		"code", rec.Code,
		"expires_at", rec.ExpiresAt.UnixMilli(),
		"attempts", rec.Attempts,
	)
	// Hold the key a little past logical expiry so a late attempt reads
	// "expired" rather than "not found".
	pipe.PExpire(ctx, key, ttl+time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store one-time code: %w", err)
	}
	return nil
}

func (s *RedisStore) Consume(ctx context.Context, id domain.Identifier, code string, maxAttempts int) error {
	start := time.Now()
	defer func() {
		consumeDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	res, err := consumeScript.Run(ctx, s.client,
		[]string{s.key(id)},
		code,
		strconv.Itoa(maxAttempts),
		strconv.FormatInt(s.now().UnixMilli(), 10),
	).Text()
	if err != nil {
		return fmt.Errorf("consume one-time code: %w", err)
	}

	switch res {
	case "ok":
		return nil
	case "not_found":
		return ErrNotFound
	case "expired":
		return ErrExpired
	case "mismatch":
		return ErrMismatch
	case "too_many_attempts":
		return ErrTooManyAttempts
	default:
		return fmt.Errorf("consume one-time code: unexpected script result %q", res)
	}
}

func (s *RedisStore) Delete(ctx context.Context, id domain.Identifier) error {
	return s.client.Del(ctx, s.key(id)).Err()
}
