package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// Limiter decide se a chave (ip) ainda pode fazer requisições.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// ------------------------------------------------------
// Em memória (uma instância)
// ------------------------------------------------------

type MemoryLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func NewMemoryLimiter(perMinute int) *MemoryLimiter {
	if perMinute <= 0 {
		perMinute = 60
	}
	return &MemoryLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
	}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	l, ok := m.limiters[key]
	if !ok {
		l = rate.NewLimiter(m.limit, m.burst)
		m.limiters[key] = l
	}
	m.mu.Unlock()

	return l.Allow(), nil
}

// ------------------------------------------------------
// Redis (janela fixa, compartilhado entre instâncias)
// ------------------------------------------------------

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

type RedisLimiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
	prefix string
}

func NewRedisLimiter(rdb *redis.Client, perMinute int) *RedisLimiter {
	if perMinute <= 0 {
		perMinute = 60
	}
	return &RedisLimiter{rdb: rdb, limit: int64(perMinute), window: time.Minute, prefix: "rl"}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	res, err := fixedWindowScript.Run(ctx, r.rdb, []string{r.prefix + ":" + key}, r.window.Milliseconds()).Result()
	if err != nil {
		return false, err
	}

	var count int64
	switch v := res.(type) {
	case int64:
		count = v
	case string:
		if count, err = strconv.ParseInt(v, 10, 64); err != nil {
			return false, err
		}
	default:
		return false, fmt.Errorf("unexpected redis script result type %T", res)
	}
	return count <= r.limit, nil
}

// ------------------------------------------------------
// Middleware
// ------------------------------------------------------

// RateLimit limita por IP. Com failOpen, erro no limiter deixa passar.
func RateLimit(limiter Limiter, failOpen bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		ok, err := limiter.Allow(c.Request.Context(), ip)
		if err != nil {
			Logger(c).Warn("rate limiter error", zap.Error(err))
			if failOpen {
				c.Next()
				return
			}
			httperr.Unavailable(c, "rate_limiter_unavailable", "")
			c.Abort()
			return
		}

		if !ok {
			Logger(c).Warn("rate limit exceeded", zap.String("ip", ip))
			httperr.Write(c, http.StatusTooManyRequests, "rate_limited", "Muitas requisições. Tente novamente em instantes.")
			c.Abort()
			return
		}

		c.Next()
	}
}
