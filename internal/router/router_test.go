package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/moojpayam/api/internal/config"
	"github.com/moojpayam/api/internal/provider"
	"github.com/moojpayam/api/internal/service"

	"github.com/gin-gonic/gin"
)

type stubSmsSender struct{}

func (stubSmsSender) SendByBaseNumber(ctx context.Context, text, to string, bodyID int64) (int64, error) {
	return 1, nil
}

func newContactQuotaEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Admin.Username = "admin"
	cfg.Admin.Password = "s3cret-pass"
	cfg.Session.ExpireHours = 2
	cfg.Otp.TTLSeconds = 120
	cfg.Otp.ProofSecret = "0123456789abcdef0123456789abcdef"
	cfg.Otp.ProofTTLMinutes = 10
	cfg.RateLimit.Contact.WindowSeconds = 24 * 3600
	cfg.RateLimit.Contact.MaxRequests = 2

	auth, err := service.NewAuthService(cfg)
	if err != nil {
		t.Fatalf("new auth service failed: %v", err)
	}
	upload, err := service.NewUploadService(t.TempDir(), cfg.Upload)
	if err != nil {
		t.Fatalf("new upload service failed: %v", err)
	}

	container := &provider.Container{
		Config:        cfg,
		AuthService:   auth,
		OtpService:    service.NewOtpService(cfg, stubSmsSender{}),
		UploadService: upload,
	}
	return SetupRouter(cfg, container)
}

func postFrom(r *gin.Engine, target, ip, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = ip + ":4000"
	r.ServeHTTP(w, req)
	return w
}

func TestOtpRequestsShareContactQuotaPerIP(t *testing.T) {
	r := newContactQuotaEngine(t)

	phones := []string{"09120000011", "09120000022"}
	for i, phone := range phones {
		w := postFrom(r, "/api/send-otp", "7.7.7.7", `{"phone":"`+phone+`"}`)
		if !strings.Contains(w.Body.String(), `"expires_in":120`) {
			t.Fatalf("send %d should pass, body %s", i+1, w.Body.String())
		}
	}

	// A third phone does not buy more quota for the same client.
	w := postFrom(r, "/api/send-otp", "7.7.7.7", `{"phone":"09120000033"}`)
	if !strings.Contains(w.Body.String(), `"status_code":429`) {
		t.Fatalf("third send from one IP must be limited, body %s", w.Body.String())
	}

	// The contact form draws from the same bucket.
	w = postFrom(r, "/api/send-email", "7.7.7.7", `{}`)
	if !strings.Contains(w.Body.String(), `"status_code":429`) {
		t.Fatalf("contact submission must see the spent quota, body %s", w.Body.String())
	}

	// Another client still has its own budget.
	w = postFrom(r, "/api/send-otp", "7.7.8.8", `{"phone":"09120000044"}`)
	if !strings.Contains(w.Body.String(), `"expires_in":120`) {
		t.Fatalf("other client should pass, body %s", w.Body.String())
	}
}
