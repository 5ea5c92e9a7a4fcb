package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ardaseremet/clubhub/internal/app/models/dto"
)

// RateLimiter implements fixed-window rate limiting over Redis. A nil
// limiter (no Redis configured) disables limiting entirely.
type RateLimiter struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(client *redis.Client, logger zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		client: client,
		logger: logger,
	}
}

// Limit enforces at most requests per window, keyed by the authenticated
// user when available and the client IP otherwise
func (rl *RateLimiter) Limit(name string, requests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.client == nil {
			c.Next()
			return
		}

		key := rl.key(c, name, window)

		count, resetAt, err := rl.checkAndIncrement(c.Request.Context(), key, window)
		if err != nil {
			// Limiter trouble never takes the API down
			rl.logger.Warn().Err(err).
				Str("key", key).
				Msg("Rate limiter check failed, allowing request")
			c.Next()
			return
		}

		remaining := requests - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if count > int64(requests) {
			rl.logger.Warn().
				Str("key", key).
				Int64("count", count).
				Msg("Rate limit exceeded")

			c.Header("Retry-After", strconv.Itoa(int(time.Until(resetAt).Seconds())))
			detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(detail))
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) key(c *gin.Context, name string, window time.Duration) string {
	bucket := time.Now().Unix() / int64(window.Seconds())
	if userID, ok := GetUserID(c); ok {
		return fmt.Sprintf("ratelimit:%s:user:%d:%d", name, userID, bucket)
	}
	return fmt.Sprintf("ratelimit:%s:ip:%s:%d", name, c.ClientIP(), bucket)
}

func (rl *RateLimiter) checkAndIncrement(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	pipe := rl.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, err
	}

	resetAt := time.Now().Truncate(window).Add(window)
	return incr.Val(), resetAt, nil
}
