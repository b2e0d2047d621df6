package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newLimitedEngine(rule RateLimitRule, keyFunc RateLimitKeyFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware(rule, keyFunc))
	r.POST("/target", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRateLimitRejectsOverBudget(t *testing.T) {
	rule := RateLimitRule{
		Prefix:        "test_login_budget",
		WindowSeconds: 900,
		MaxRequests:   5,
		MessageKey:    "error.rate_limited_login",
	}
	r := newLimitedEngine(rule, KeyByIP)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/target", nil)
		req.RemoteAddr = "9.9.9.9:1000"
		r.ServeHTTP(w, req)
		if !strings.Contains(w.Body.String(), `"ok":true`) {
			t.Fatalf("request %d should pass, body %s", i+1, w.Body.String())
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/target", nil)
	req.RemoteAddr = "9.9.9.9:1000"
	r.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), `"status_code":429`) {
		t.Fatalf("sixth request must be limited, body %s", w.Body.String())
	}

	// A different client has its own bucket.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/target", nil)
	req.RemoteAddr = "8.8.8.8:1000"
	r.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("other client should pass, body %s", w.Body.String())
	}
}

func TestMemoryLimiterWindowReset(t *testing.T) {
	limiter := newMemoryRateLimiter()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := base
	limiter.setClock(func() time.Time { return now })

	for i := 1; i <= 3; i++ {
		count, _ := limiter.hit("window-reset", 60)
		if count != int64(i) {
			t.Fatalf("hit %d want count %d got %d", i, i, count)
		}
	}

	now = base.Add(61 * time.Second)
	count, ttl := limiter.hit("window-reset", 60)
	if count != 1 {
		t.Fatalf("count after window reset want 1 got %d", count)
	}
	if ttl < 1 || ttl > 60 {
		t.Fatalf("ttl out of range: %d", ttl)
	}
}

func TestRateLimitDisabledRulePasses(t *testing.T) {
	r := newLimitedEngine(RateLimitRule{}, KeyByIP)
	for i := 0; i < 20; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/target", nil)
		r.ServeHTTP(w, req)
		if !strings.Contains(w.Body.String(), `"ok":true`) {
			t.Fatalf("zero-valued rule must not limit, body %s", w.Body.String())
		}
	}
}

func TestKeyByIPAndJSONFieldRestoresBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/send-otp", strings.NewReader(`{"phone":" 09121234567 "}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "1.2.3.4:5678"

	key := KeyByIPAndJSONField("phone")(c)
	if key != "09121234567|1.2.3.4" {
		t.Fatalf("key want 09121234567|1.2.3.4 got %s", key)
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body after key extraction failed: %v", err)
	}
	if !strings.Contains(string(body), "09121234567") {
		t.Fatalf("request body should be restored after reading field")
	}
}

func TestKeyByIPAndJSONFieldFallsBackToIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/send-otp", strings.NewReader(`not json`))
	c.Request.RemoteAddr = "1.2.3.4:5678"

	if key := KeyByIPAndJSONField("phone")(c); key != "1.2.3.4" {
		t.Fatalf("key want 1.2.3.4 got %s", key)
	}
}

func TestKeyByIPAndParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/blogs/42/view", nil)
	c.Request.RemoteAddr = "1.2.3.4:5678"
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	if key := KeyByIPAndParam("id")(c); key != "1.2.3.4|42" {
		t.Fatalf("key want 1.2.3.4|42 got %s", key)
	}
}

func TestToInt64(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  int64
		ok    bool
	}{
		{name: "int64", input: int64(10), want: 10, ok: true},
		{name: "int", input: int(11), want: 11, ok: true},
		{name: "int32", input: int32(12), want: 12, ok: true},
		{name: "float64", input: float64(13.9), want: 13, ok: true},
		{name: "numeric string", input: "14", want: 14, ok: true},
		{name: "bad string", input: "bad", want: 0, ok: false},
		{name: "nil", input: nil, want: 0, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toInt64(tc.input)
			if ok != tc.ok {
				t.Fatalf("ok want %v got %v", tc.ok, ok)
			}
			if got != tc.want {
				t.Fatalf("value want %d got %d", tc.want, got)
			}
		})
	}
}
