package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LoginLimiter is a fixed-window counter in Redis, shared by every server
// instance.
type LoginLimiter struct {
	redis  *redis.Client
	prefix string
	limit  int
	window time.Duration
	log    *zap.Logger
}

func NewLoginLimiter(r *redis.Client, prefix string, limit int, window time.Duration, log *zap.Logger) *LoginLimiter {
	return &LoginLimiter{redis: r, prefix: prefix, limit: limit, window: window, log: log}
}

// Handler counts an attempt and sets the window expiry in one MULTI/EXEC,
// so a key never outlives its window. EXPIRE NX needs Redis 7.
func (l *LoginLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("%s:%s", l.prefix, c.IP())

		var incr *redis.IntCmd
		_, err := l.redis.TxPipelined(c.Context(), func(pipe redis.Pipeliner) error {
			incr = pipe.Incr(c.Context(), key)
			pipe.ExpireNX(c.Context(), key, l.window)
			return nil
		})
		if err != nil {
			// fail open
			l.log.Warn("login limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if incr.Val() > int64(l.limit) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many login attempts, please try again later",
			})
		}
		return c.Next()
	}
}
