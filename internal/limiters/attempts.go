package limiters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrOTPAttemptsExceeded = errors.New("otp attempts exceeded")
	ErrOTPAttemptBackend   = errors.New("otp attempt limiter unavailable")
)

type OTPAttemptConfig struct {
	MaxAttempts int
	Cooldown    time.Duration
}

// OTPAttemptLimiter counts failed code submissions per authentication
// session. The counter expires with the cooldown so an abandoned flow does
// not lock the user out forever.
type OTPAttemptLimiter struct {
	redis       redis.UniversalClient
	maxAttempts int
	cooldown    time.Duration
}

func NewOTPAttemptLimiter(redisClient redis.UniversalClient, cfg OTPAttemptConfig) *OTPAttemptLimiter {
	if cfg.MaxAttempts <= 0 {
		return nil
	}
	return &OTPAttemptLimiter{
		redis:       redisClient,
		maxAttempts: cfg.MaxAttempts,
		cooldown:    cfg.Cooldown,
	}
}

func (l *OTPAttemptLimiter) key(sessionID string) string {
	return "soa:" + sessionID
}

func (l *OTPAttemptLimiter) Check(ctx context.Context, sessionID string) error {
	if l == nil || l.redis == nil {
		return nil
	}
	count, err := l.redis.Get(ctx, l.key(sessionID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrOTPAttemptBackend, err)
	}
	if int(count) >= l.maxAttempts {
		return ErrOTPAttemptsExceeded
	}
	return nil
}

func (l *OTPAttemptLimiter) RecordFailure(ctx context.Context, sessionID string) error {
	if l == nil || l.redis == nil {
		return nil
	}
	count, err := l.redis.Incr(ctx, l.key(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOTPAttemptBackend, err)
	}
	if count == 1 {
		if err := l.redis.Expire(ctx, l.key(sessionID), l.cooldown).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrOTPAttemptBackend, err)
		}
	}
	if int(count) >= l.maxAttempts {
		return ErrOTPAttemptsExceeded
	}
	return nil
}

func (l *OTPAttemptLimiter) Reset(ctx context.Context, sessionID string) error {
	if l == nil || l.redis == nil {
		return nil
	}
	if err := l.redis.Del(ctx, l.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrOTPAttemptBackend, err)
	}
	return nil
}
