package middlewares

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// slidingWindow keeps one sorted set member per accepted request, scored in
// unix milliseconds. ARGV: now, window, limit, member. Returns the requests
// left in the window, or -1 when the request is rejected.
var slidingWindow = redis.NewScript(`
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', now - window)
local used = redis.call('ZCARD', KEYS[1])
if used >= limit then
  return -1
end

redis.call('ZADD', KEYS[1], now, ARGV[4])
redis.call('PEXPIRE', KEYS[1], window)
return limit - used - 1
`)

var rateLimitClock = time.Now

// RedisRateLimit limits requests per client IP. Without redis, or when redis
// fails, requests pass through.
func RedisRateLimit(rdb *redis.Client, scope string, limit int, window time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if rdb == nil {
			ctx.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:ip:%s", scope, ctx.ClientIP())
		now := rateLimitClock().UnixMilli()
		member := strconv.FormatInt(now, 10) + ":" + uuid.NewString()

		left, err := slidingWindow.Run(ctx.Request.Context(), rdb, []string{key},
			now, window.Milliseconds(), limit, member).Int()
		if err != nil {
			log.Println("Rate limit check failed:", err)
			ctx.Next()
			return
		}

		ctx.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		if left < 0 {
			ctx.Header("X-RateLimit-Remaining", "0")
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests, try again later"})
			return
		}
		ctx.Header("X-RateLimit-Remaining", strconv.Itoa(left))
		ctx.Next()
	}
}
