package utils

import (
	"context" // Context for Redis operations
	"strings" // Key normalization
	"time"    // Window durations

	"github.com/redis/go-redis/v9" // Redis client
)

// LoginAttempts counts failed logins per username in Redis.
// A nil *LoginAttempts never blocks.
type LoginAttempts struct {
	rdb    *redis.Client // Redis client
	max    int64         // Failures allowed per window
	window time.Duration // Counter lifetime from the first failure
}

// NewLoginAttempts creates a counter allowing max failures per window
func NewLoginAttempts(rdb *redis.Client, max int, window time.Duration) *LoginAttempts {
	if max <= 0 {
		max = 5
	}
	if window <= 0 {
		window = 10 * time.Minute
	}
	return &LoginAttempts{rdb: rdb, max: int64(max), window: window}
}

func attemptsKey(username string) string {
	return "login:failures:" + strings.ToLower(strings.TrimSpace(username))
}

// Blocked reports whether username has used up its failures for the current window
func (a *LoginAttempts) Blocked(ctx context.Context, username string) (bool, error) {
	if a == nil {
		return false, nil
	}
	n, err := a.rdb.Get(ctx, attemptsKey(username)).Int64() // Current failure count
	if err == redis.Nil {
		return false, nil // No failures recorded
	} else if err != nil {
		return false, err // Other Redis error
	}
	return n >= a.max, nil
}

// RecordFailure increments the failure counter, starting the window on the first failure
func (a *LoginAttempts) RecordFailure(ctx context.Context, username string) (int64, error) {
	if a == nil {
		return 0, nil
	}
	key := attemptsKey(username)
	n, err := a.rdb.Incr(ctx, key).Result() // Atomic increment
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := a.rdb.Expire(ctx, key, a.window).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

// Reset clears the failure counter after a successful login
func (a *LoginAttempts) Reset(ctx context.Context, username string) error {
	if a == nil {
		return nil
	}
	return a.rdb.Del(ctx, attemptsKey(username)).Err() // Delete key from Redis
}
