package middleware

import (
	"time"

	"nestira/config"

	"github.com/gofiber/fiber/v2"
)

const (
	rateLimitPeriod = 15 * time.Minute
	rateLimitCount  = 1000
)

// RateLimiter throttles per-IP request counts through Redis. Without a
// Redis connection it passes every request through.
func RateLimiter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if config.RedisClient == nil {
			return c.Next()
		}

		key := "rate_limit:" + c.IP()
		count, err := config.RedisClient.Incr(c.Context(), key).Result()
		if err != nil {
			// Redis trouble should not take the API down.
			return c.Next()
		}

		if count == 1 {
			config.RedisClient.Expire(c.Context(), key, rateLimitPeriod)
		}

		if count > rateLimitCount {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests",
			})
		}

		return c.Next()
	}
}
