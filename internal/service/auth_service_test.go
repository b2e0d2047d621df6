package service

import (
	"errors"
	"testing"
	"time"

	"github.com/moojpayam/api/internal/config"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	cfg := &config.Config{}
	cfg.Admin.Username = "admin"
	cfg.Admin.Password = "s3cret-pass"
	cfg.Session.ExpireHours = 2
	s, err := NewAuthService(cfg)
	if err != nil {
		t.Fatalf("new auth service failed: %v", err)
	}
	return s
}

func TestAuthRequiresConfiguredPassword(t *testing.T) {
	cfg := &config.Config{}
	cfg.Admin.Username = "admin"
	if _, err := NewAuthService(cfg); err == nil {
		t.Fatalf("empty admin password must fail service construction")
	}
}

func TestAuthLoginAndVerify(t *testing.T) {
	s := newTestAuthService(t)

	if _, err := s.Login("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
	if _, err := s.Login("nobody", "s3cret-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown username want ErrInvalidCredentials got %v", err)
	}

	token, err := s.Login("admin", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	username, err := s.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if username != "admin" {
		t.Fatalf("username want admin got %s", username)
	}

	s.Logout(token)
	if _, err := s.Verify(token); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("verify after logout want ErrSessionExpired got %v", err)
	}
}

func TestAuthSessionExpiresServerSide(t *testing.T) {
	s := newTestAuthService(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	now := base
	s.SetClock(func() time.Time { return now })

	token, err := s.Login("admin", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	now = base.Add(2*time.Hour - time.Minute)
	if _, err := s.Verify(token); err != nil {
		t.Fatalf("session inside the window should verify: %v", err)
	}

	now = base.Add(2*time.Hour + time.Second)
	if _, err := s.Verify(token); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expired session want ErrSessionExpired got %v", err)
	}
	if got := s.ActiveSessions(); got != 0 {
		t.Fatalf("active sessions want 0 got %d", got)
	}
}

func TestAuthTokensAreUnique(t *testing.T) {
	s := newTestAuthService(t)
	first, err := s.Login("admin", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	second, err := s.Login("admin", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if first == second {
		t.Fatalf("two logins must not share a token")
	}
	if len(first) != 64 {
		t.Fatalf("token length want 64 hex chars got %d", len(first))
	}
	if got := s.ActiveSessions(); got != 2 {
		t.Fatalf("active sessions want 2 got %d", got)
	}
}
