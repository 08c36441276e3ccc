package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const attemptWindow = 15 * time.Minute

// AttemptTracker counts failed logins per email in Redis.
// Key format: login_fail:<email>, expiring attemptWindow after the first
// failure so the count covers a rolling window.
type AttemptTracker struct {
	client *redis.Client
}

// NewAttemptTracker creates an AttemptTracker wrapping the given Redis client.
func NewAttemptTracker(client *redis.Client) *AttemptTracker {
	return &AttemptTracker{client: client}
}

// RecordFailure increments the failure counter for email and returns the new
// count. The window TTL is set only when the key is first created.
func (t *AttemptTracker) RecordFailure(ctx context.Context, email string) (int64, error) {
	key := t.key(email)
	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("record failed login: %w", err)
	}
	if count == 1 {
		if err := t.client.Expire(ctx, key, attemptWindow).Err(); err != nil {
			return count, fmt.Errorf("set attempt window: %w", err)
		}
	}
	return count, nil
}

// Reset clears the counter, typically after a successful login.
func (t *AttemptTracker) Reset(ctx context.Context, email string) error {
	return t.client.Del(ctx, t.key(email)).Err()
}

func (t *AttemptTracker) key(email string) string {
	return "login_fail:" + email
}
