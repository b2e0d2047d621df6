package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/moojpayam/api/internal/cache"
	"github.com/moojpayam/api/internal/http/response"
	"github.com/moojpayam/api/internal/i18n"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc derives the limiter key for a request.
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule is one fixed-window limiter.
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	MessageKey    string
}

var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// memoryWindow is one in-process fixed window counter.
type memoryWindow struct {
	count     int64
	expiresAt time.Time
}

// memoryRateLimiter backs the limiter when Redis is disabled. Counters are
// per process, which matches the single-node deployment.
type memoryRateLimiter struct {
	mu      sync.Mutex
	windows map[string]memoryWindow
	clock   func() time.Time
}

var defaultMemoryLimiter = newMemoryRateLimiter()

func newMemoryRateLimiter() *memoryRateLimiter {
	return &memoryRateLimiter{
		windows: make(map[string]memoryWindow),
		clock:   time.Now,
	}
}

// setClock overrides the time source, for window expiry tests.
func (l *memoryRateLimiter) setClock(clock func() time.Time) {
	if clock == nil {
		return
	}
	l.mu.Lock()
	l.clock = clock
	l.mu.Unlock()
}

// hit counts one request and reports the running total plus the window's
// remaining seconds. The first hit of a window starts it.
func (l *memoryRateLimiter) hit(key string, windowSeconds int) (int64, int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.clock()

	window, ok := l.windows[key]
	if !ok || now.After(window.expiresAt) {
		window = memoryWindow{count: 0, expiresAt: now.Add(time.Duration(windowSeconds) * time.Second)}
	}
	window.count++
	l.windows[key] = window

	// Keep dead windows from piling up.
	if len(l.windows) > 4096 {
		for k, w := range l.windows {
			if now.After(w.expiresAt) {
				delete(l.windows, k)
			}
		}
	}

	ttl := int64(window.expiresAt.Sub(now).Seconds())
	if ttl < 1 {
		ttl = 1
	}
	return window.count, ttl
}

// RateLimitMiddleware enforces a fixed-window limit keyed by keyFunc. Redis
// backs the counters when enabled; otherwise the in-process limiter does.
func RateLimitMiddleware(rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rule.WindowSeconds <= 0 || rule.MaxRequests <= 0 {
			c.Next()
			return
		}

		key := ""
		if keyFunc != nil {
			key = strings.TrimSpace(keyFunc(c))
		}
		if key == "" {
			key = c.ClientIP()
		}
		if rule.Prefix != "" {
			key = fmt.Sprintf("%s:%s", rule.Prefix, key)
		}

		var count, ttlSeconds int64
		if client := cache.Client(); client != nil {
			result, err := rateLimitScript.Run(c.Request.Context(), client, []string{key}, rule.WindowSeconds).Result()
			if err != nil {
				response.Error(c, response.CodeInternal, i18n.T("error.rate_limit_unavailable"))
				c.Abort()
				return
			}
			values, ok := result.([]interface{})
			if !ok || len(values) < 2 {
				response.Error(c, response.CodeInternal, i18n.T("error.rate_limit_unavailable"))
				c.Abort()
				return
			}
			count, ok = toInt64(values[0])
			if !ok {
				response.Error(c, response.CodeInternal, i18n.T("error.rate_limit_unavailable"))
				c.Abort()
				return
			}
			ttlSeconds, _ = toInt64(values[1])
		} else {
			count, ttlSeconds = defaultMemoryLimiter.hit(key, rule.WindowSeconds)
		}

		if count > int64(rule.MaxRequests) {
			waitSeconds := int(ttlSeconds)
			if waitSeconds < 1 {
				waitSeconds = rule.WindowSeconds
			}
			msgKey := strings.TrimSpace(rule.MessageKey)
			if msgKey == "" {
				msgKey = "error.rate_limited"
			}
			response.Error(c, response.CodeTooManyRequests, i18n.T(msgKey))
			c.Abort()
			return
		}

		c.Next()
	}
}

// KeyByIP keys the limiter on the client IP.
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndParam keys on IP plus a path parameter, so per-resource limits
// (like blog views) do not share one bucket per client.
func KeyByIPAndParam(param string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.TrimSpace(c.Param(param))
		if value == "" {
			return c.ClientIP()
		}
		return fmt.Sprintf("%s|%s", c.ClientIP(), value)
	}
}

// KeyByIPAndJSONField keys on IP plus a JSON body field (like the phone
// number), restoring the body for the handler afterwards.
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(strings.TrimSpace(readJSONField(c, field)))
		if value == "" {
			return c.ClientIP()
		}
		return fmt.Sprintf("%s|%s", value, c.ClientIP())
	}
}

func readJSONField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
	if len(body) == 0 {
		return ""
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	value, ok := payload[field]
	if !ok {
		return ""
	}
	if text, ok := value.(string); ok {
		return strings.TrimSpace(text)
	}
	return ""
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case float64:
		return int64(v), true
	case string:
		parsed, err := json.Number(v).Int64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
