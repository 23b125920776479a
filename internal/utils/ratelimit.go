package utils

import (
	"context" // Context for Redis operations
	"strings" // Key normalisation
	"time"    // Window durations

	"github.com/redis/go-redis/v9" // Redis client
)

// LoginLimiter counts failed logins per username in Redis
type LoginLimiter struct {
	rdb         *redis.Client // Redis client
	maxAttempts int           // Failures allowed per window
	window      time.Duration // Window length, starts at the first failure
}

// NewLoginLimiter creates a limiter allowing maxAttempts failures per window
func NewLoginLimiter(rdb *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{rdb: rdb, maxAttempts: maxAttempts, window: window}
}

func loginKey(username string) string {
	return "login:fail:" + strings.ToLower(strings.TrimSpace(username))
}

// Allowed reports whether another login attempt may be made for username
func (l *LoginLimiter) Allowed(ctx context.Context, username string) (bool, error) {
	n, err := l.rdb.Get(ctx, loginKey(username)).Int()
	if err == redis.Nil {
		return true, nil // No failures recorded
	} else if err != nil {
		return false, err
	}
	return n < l.maxAttempts, nil
}

// RegisterFailure records a failed attempt; the window starts with the first failure
func (l *LoginLimiter) RegisterFailure(ctx context.Context, username string) error {
	key := loginKey(username)
	n, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if n == 1 {
		return l.rdb.Expire(ctx, key, l.window).Err()
	}
	return nil
}

// Reset clears the failure count after a successful login
func (l *LoginLimiter) Reset(ctx context.Context, username string) error {
	return l.rdb.Del(ctx, loginKey(username)).Err()
}
