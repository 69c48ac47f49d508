package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/account-gateway/internal/config"
)

var (
	// ErrLimited is returned when the resend budget for a signup is spent.
	ErrLimited = errors.New("otp resend throttled")
	// ErrUnavailable wraps Redis failures; callers decide whether to fail
	// open or closed.
	ErrUnavailable = errors.New("rate limiter unavailable")
)

// ResendLimiter bounds OTP resend attempts per pending signup using a fixed
// Redis window: INCR the counter, set the window TTL on first increment,
// reject once the counter exceeds the budget.
type ResendLimiter struct {
	redis  *redis.Client
	max    int
	window time.Duration
}

// NewResendLimiter builds a limiter. A nil client disables limiting.
func NewResendLimiter(client *redis.Client, cfg config.RateLimitConfig) *ResendLimiter {
	return &ResendLimiter{
		redis:  client,
		max:    cfg.ResendMaxAttempts,
		window: cfg.ResendWindow(),
	}
}

// Allow consumes one resend attempt for the given signup.
func (l *ResendLimiter) Allow(ctx context.Context, userID string) error {
	if l == nil || l.redis == nil || l.max <= 0 {
		return nil
	}

	key := resendKey(userID)
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}
	if count > int64(l.max) {
		return ErrLimited
	}
	return nil
}

func resendKey(userID string) string {
	return "otp_resend:" + userID
}
