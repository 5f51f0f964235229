package middleware

import (
	"fmt"
	"log"
	"time"

	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware applies a fixed-window limit per client IP, backed by
// redis. A nil client disables limiting, matching the optional-cache posture
// of the rest of the stack.
func RateLimitMiddleware(client *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s", c.ClientIP())
		ctx := c.Request.Context()

		// Incr and ExpireNX travel in one pipeline so the counter can never
		// be left without a TTL, which would lock the client out permanently.
		pipe := client.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		if _, err := pipe.Exec(ctx); err != nil {
			// Redis being down should not take the API with it.
			log.Printf("rate limiter unavailable: %v", err)
			c.Next()
			return
		}

		if incr.Val() > int64(limit) {
			utils.TrackError("rate_limit", "exceeded")
			utils.TooManyRequests(c, "Too many requests, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
