package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/moojpayam/api/internal/config"
	"github.com/moojpayam/api/internal/constants"
	"github.com/moojpayam/api/internal/service"

	"github.com/gin-gonic/gin"
)

func newTestAuth(t *testing.T) *service.AuthService {
	t.Helper()
	cfg := &config.Config{}
	cfg.Admin.Username = "admin"
	cfg.Admin.Password = "s3cret-pass"
	cfg.Session.ExpireHours = 2
	auth, err := service.NewAuthService(cfg)
	if err != nil {
		t.Fatalf("new auth service failed: %v", err)
	}
	return auth
}

func TestRequireAdminMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := newTestAuth(t)

	r := gin.New()
	r.GET("/admin/ping", RequireAdminMiddleware(auth), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"admin_user": c.GetString("admin_user")})
	})

	// No cookie.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	r.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), `"status_code":401`) {
		t.Fatalf("missing cookie want 401 envelope, body %s", w.Body.String())
	}

	// Bogus token.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: constants.AdminSessionCookie, Value: "bogus"})
	r.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), `"status_code":401`) {
		t.Fatalf("bogus token want 401 envelope, body %s", w.Body.String())
	}

	// Real session.
	token, err := auth.Login("admin", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: constants.AdminSessionCookie, Value: token})
	r.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), `"admin_user":"admin"`) {
		t.Fatalf("valid session should reach the handler, body %s", w.Body.String())
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	// Inbound id is reused.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "client-id-1")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "client-id-1" {
		t.Fatalf("inbound request id should be reused, got %s", got)
	}

	// A fresh id is minted otherwise.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got == "" {
		t.Fatalf("response must carry a generated request id")
	}
}

func TestResolveAllowedOrigin(t *testing.T) {
	cases := []struct {
		name             string
		origin           string
		allowed          []string
		allowCredentials bool
		want             string
	}{
		{name: "wildcard", origin: "https://a.ir", allowed: []string{"*"}, want: "*"},
		{name: "wildcard with credentials echoes origin", origin: "https://a.ir", allowed: []string{"*"}, allowCredentials: true, want: "https://a.ir"},
		{name: "exact match", origin: "https://moojpayam.ir", allowed: []string{"https://moojpayam.ir"}, want: "https://moojpayam.ir"},
		{name: "case insensitive match", origin: "https://MoojPayam.ir", allowed: []string{"https://moojpayam.ir"}, want: "https://MoojPayam.ir"},
		{name: "no match", origin: "https://evil.example", allowed: []string{"https://moojpayam.ir"}, want: ""},
		{name: "empty origin", origin: "", allowed: []string{"https://moojpayam.ir"}, want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := resolveAllowedOrigin(tc.origin, tc.allowed, tc.allowCredentials)
			if got != tc.want {
				t.Fatalf("origin want %q got %q", tc.want, got)
			}
		})
	}
}
