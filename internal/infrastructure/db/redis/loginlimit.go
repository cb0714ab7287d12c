package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 10
	defaultWindow      = time.Minute
)

// LoginLimiter throttles login attempts with a fixed-window counter in Redis.
// Key format: loginrl:<client_ip>
type LoginLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

// incrExpire atomically increments the window counter and sets its expiry on
// first use.
var incrExpire = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
// Non-positive max or window fall back to defaults.
func NewLoginLimiter(client *redis.Client, max int64, window time.Duration) *LoginLimiter {
	if max <= 0 {
		max = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginLimiter{client: client, max: max, window: window}
}

// Allow records one attempt for key and reports whether it is still within
// the window budget.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := incrExpire.Run(ctx, l.client, []string{l.key(key)}, l.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("login limit check: %w", err)
	}
	return count <= l.max, nil
}

func (l *LoginLimiter) key(k string) string {
	return fmt.Sprintf("loginrl:%s", k)
}
