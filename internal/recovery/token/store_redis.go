package token

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"storegate/pkg/domain"
)

const tokenKeyPrefix = "pr:token:"

// consumeScript compares and deletes in one atomic step so a token can be
// accepted at most once across concurrent resets. Validity is measured from
// issuance, not from the original request.
var consumeScript = redis.NewScript(`
local token = redis.call('HGET', KEYS[1], 'token')
if not token then
  return 'not_found'
end
local issued = tonumber(redis.call('HGET', KEYS[1], 'issued_at'))
if tonumber(ARGV[2]) - issued > tonumber(ARGV[3]) then
  redis.call('DEL', KEYS[1])
  return 'expired'
end
if token ~= ARGV[1] then
  return 'mismatch'
end
redis.call('DEL', KEYS[1])
return 'ok'
`)

// RedisStore shares issued tokens across instances.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func (s *RedisStore) key(id domain.Identifier) string {
	return tokenKeyPrefix + id.String()
}

func (s *RedisStore) Put(ctx context.Context, id domain.Identifier, rec Record, validity time.Duration) error {
	key := s.key(id)
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key,
		"token", rec.Token,
		"issued_at", rec.IssuedAt.UnixMilli(),
	)
	pipe.PExpire(ctx, key, validity+time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}
	return nil
}

func (s *RedisStore) Consume(ctx context.Context, id domain.Identifier, token string, validity time.Duration) error {
	res, err := consumeScript.Run(ctx, s.client,
		[]string{s.key(id)},
		token,
		strconv.FormatInt(s.now().UnixMilli(), 10),
		strconv.FormatInt(validity.Milliseconds(), 10),
	).Text()
	if err != nil {
		return fmt.Errorf("consume reset token: %w", err)
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
	default:
		return fmt.Errorf("consume reset token: unexpected script result %q", res)
	}
}

func (s *RedisStore) Delete(ctx context.Context, id domain.Identifier) error {
	return s.client.Del(ctx, s.key(id)).Err()
}
