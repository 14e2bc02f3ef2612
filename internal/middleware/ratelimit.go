package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"qa-service-go/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// RateLimit 基于 Redis 的固定窗口限流，按客户端 IP 计数。
// Redis 不可用时放行请求，只记录日志。
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		now := time.Now()
		windowStart := now.Truncate(window)
		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), windowStart.Unix())

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Warnf("RateLimit: redis incr failed, error: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			if err := rdb.Expire(ctx, key, window).Err(); err != nil {
				log.Warnf("RateLimit: redis expire failed, error: %v", err)
			}
		}

		remaining := int64(limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(limit) {
			retryAfter := windowStart.Add(window).Sub(now)
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "too many requests",
			})
			return
		}
		c.Next()
	}
}
