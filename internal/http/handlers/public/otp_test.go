package public

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

type captureSender struct {
	lastCode string
}

func (s *captureSender) SendByBaseNumber(ctx context.Context, text, to string, bodyID int64) (int64, error) {
	s.lastCode = text
	return 1, nil
}

func newOtpTestHandler(t *testing.T) (*Handler, *captureSender) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Otp.TTLSeconds = 120
	cfg.Otp.ProofSecret = "0123456789abcdef0123456789abcdef"
	cfg.Otp.ProofTTLMinutes = 10

	sender := &captureSender{}
	container := &provider.Container{
		Config:     cfg,
		OtpService: service.NewOtpService(cfg, sender),
	}
	return New(container), sender
}

func postJSON(r *gin.Engine, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestOtpEndpointsRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, sender := newOtpTestHandler(t)

	r := gin.New()
	r.POST("/api/send-otp", h.SendOtp)
	r.POST("/api/verify-otp", h.VerifyOtp)

	w := postJSON(r, "/api/send-otp", `{"phone":"09121234567"}`)
	if !strings.Contains(w.Body.String(), `"expires_in":120`) {
		t.Fatalf("send response must carry expires_in, body %s", w.Body.String())
	}
	if len(sender.lastCode) != 4 {
		t.Fatalf("gateway should receive a 4-digit code, got %q", sender.lastCode)
	}

	w = postJSON(r, "/api/verify-otp", `{"phone":"09121234567","code":"`+sender.lastCode+`"}`)
	body := w.Body.String()
	if !strings.Contains(body, `"verified":true`) || !strings.Contains(body, `"proof":`) {
		t.Fatalf("verify response must carry verified flag and proof, body %s", body)
	}
}

func TestVerifyOtpUnknownPhoneMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _ := newOtpTestHandler(t)

	r := gin.New()
	r.POST("/api/verify-otp", h.VerifyOtp)

	w := postJSON(r, "/api/verify-otp", `{"phone":"09350000000","code":"1234"}`)
	body := w.Body.String()
	if !strings.Contains(body, `"status_code":404`) {
		t.Fatalf("unknown phone want 404 envelope, body %s", body)
	}
	if !strings.Contains(body, "کد تایید برای این شماره یافت نشد") {
		t.Fatalf("unknown phone must return the fixed not-found message, body %s", body)
	}
}

func TestSendOtpRejectsInvalidPhone(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _ := newOtpTestHandler(t)

	r := gin.New()
	r.POST("/api/send-otp", h.SendOtp)

	w := postJSON(r, "/api/send-otp", `{"phone":"02188776655"}`)
	if !strings.Contains(w.Body.String(), `"status_code":400`) {
		t.Fatalf("landline number want 400 envelope, body %s", w.Body.String())
	}
}
