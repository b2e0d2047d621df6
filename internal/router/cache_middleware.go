package router

import (
	"net/http"
	"time"

	"github.com/moojpayam/api/internal/cache"
	"github.com/moojpayam/api/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// bodyRecorder tees the response body so it can be stored after the handler
// runs.
type bodyRecorder struct {
	gin.ResponseWriter
	body []byte
}

func (w *bodyRecorder) Write(data []byte) (int, error) {
	w.body = append(w.body, data...)
	return w.ResponseWriter.Write(data)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body = append(w.body, s...)
	return w.ResponseWriter.WriteString(s)
}

// CacheMiddleware serves GET responses from the response cache for ttl.
// Only 2xx responses are stored. The key is the path plus raw query, so
// each filter combination caches separately.
func CacheMiddleware(ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ttl <= 0 || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := "resp:" + c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			key += "?" + raw
		}

		var cached cachedResponse
		hit, err := cache.GetJSON(c.Request.Context(), key, &cached)
		if err != nil {
			shared.RequestLog(c).Warnw("response_cache_read_failed", "key", key, "error", err)
		}
		if hit {
			c.Data(cached.Status, cached.ContentType, cached.Body)
			c.Abort()
			return
		}

		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status > 299 || len(recorder.body) == 0 {
			return
		}
		entry := cachedResponse{
			Status:      status,
			ContentType: c.Writer.Header().Get("Content-Type"),
			Body:        recorder.body,
		}
		if err := cache.SetJSON(c.Request.Context(), key, entry, ttl); err != nil {
			shared.RequestLog(c).Warnw("response_cache_write_failed", "key", key, "error", err)
		}
	}
}
