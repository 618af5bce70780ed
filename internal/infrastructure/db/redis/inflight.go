package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// inFlightTTL bounds how long a crashed mint can keep its row locked. It is
// well above the worst case of a mint: every node timing out in turn, then
// the full confirmation wait.
const inFlightTTL = 10 * time.Minute

// releaseScript deletes the flag only when it still carries the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// InFlightGuard marks mint rows as in flight with SETNX.
// Key format: voucher:mint:inflight:<brand_account_id>/<collection_name>
type InFlightGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewInFlightGuard creates an InFlightGuard wrapping the given Redis client.
func NewInFlightGuard(client *redis.Client) *InFlightGuard {
	return &InFlightGuard{client: client, ttl: inFlightTTL}
}

// Acquire reports false when the row is already being minted.
func (g *InFlightGuard) Acquire(ctx context.Context, key string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := g.client.SetNX(ctx, g.key(key), token, g.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("in-flight acquire: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release clears the row's flag if token still owns it.
func (g *InFlightGuard) Release(ctx context.Context, key, token string) error {
	if err := releaseScript.Run(ctx, g.client, []string{g.key(key)}, token).Err(); err != nil {
		return fmt.Errorf("in-flight release: %w", err)
	}
	return nil
}

func (g *InFlightGuard) key(row string) string {
	return keyPrefix + "mint:inflight:" + row
}
