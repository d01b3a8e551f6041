package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RedisRateLimiter is a fixed-window limiter shared by every replica.
type RedisRateLimiter struct {
	Redis  counter
	Prefix string
	Limit  int
	Window time.Duration
	log    *zap.Logger
}

func NewRedisRateLimiter(r counter, prefix string, limit int, window time.Duration, log *zap.Logger) *RedisRateLimiter {
	return &RedisRateLimiter{Redis: r, Prefix: prefix, Limit: limit, Window: window, log: log}
}

// Handler limits by client IP.
func (r *RedisRateLimiter) Handler() fiber.Handler {
	return r.MiddlewareByKey(getIP)
}

func (r *RedisRateLimiter) MiddlewareByKey(keyFunc func(c *fiber.Ctx) string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		redisKey := fmt.Sprintf("%s:%s", r.Prefix, keyFunc(c))
		count, err := r.Redis.Incr(ctx, redisKey).Result()
		if err != nil {
			r.log.Error("rate limiter incr failed", zap.String("key", redisKey), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "rate limiter error"})
		}
		if count == 1 {
			if err := r.Redis.Expire(ctx, redisKey, r.Window).Err(); err != nil {
				r.log.Warn("rate limiter expire failed", zap.String("key", redisKey), zap.Error(err))
			}
		}
		if count > int64(r.Limit) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"success": false, "error": "rate limit exceeded"})
		}
		return c.Next()
	}
}
