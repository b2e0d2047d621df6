package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/moojpayam/api/internal/config"
	"github.com/moojpayam/api/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

type adminSession struct {
	username  string
	expiresAt time.Time
}

// AuthService authenticates the single configured dashboard admin and keeps
// opaque session tokens server side. The configured password is hashed once
// at startup so every login attempt costs a constant-time bcrypt comparison.
type AuthService struct {
	mu       sync.Mutex
	sessions map[string]adminSession
	clock    func() time.Time

	username     string
	passwordHash []byte
	expire       time.Duration
}

// NewAuthService creates the auth service. It fails when no admin password
// is configured, to keep an empty-password dashboard from ever starting.
func NewAuthService(cfg *config.Config) (*AuthService, error) {
	password := cfg.Admin.Password
	if strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("auth: admin password not configured")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash admin password: %w", err)
	}

	expire := time.Duration(cfg.Session.ExpireHours) * time.Hour
	if expire <= 0 {
		expire = 2 * time.Hour
	}
	return &AuthService{
		sessions:     make(map[string]adminSession),
		clock:        time.Now,
		username:     cfg.Admin.Username,
		passwordHash: hash,
		expire:       expire,
	}, nil
}

// SetClock overrides the time source, for expiry tests.
func (s *AuthService) SetClock(clock func() time.Time) {
	if clock == nil {
		return
	}
	s.mu.Lock()
	s.clock = clock
	s.mu.Unlock()
}

// Login checks the credentials and issues a new session token.
func (s *AuthService) Login(username, password string) (string, error) {
	if username != s.username {
		// Burn a comparison anyway so unknown usernames cost the same.
		_ = bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := generateSessionToken()
	if err != nil {
		return "", fmt.Errorf("auth: generate token: %w", err)
	}

	s.mu.Lock()
	now := s.clock()
	s.purgeExpiredLocked(now)
	s.sessions[token] = adminSession{username: username, expiresAt: now.Add(s.expire)}
	s.mu.Unlock()

	logger.Infow("admin_login", "username", username)
	return token, nil
}

// Verify returns the session's username, or an error when the token is
// unknown or past its server-side expiry.
func (s *AuthService) Verify(token string) (string, error) {
	if token == "" {
		return "", ErrSessionExpired
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return "", ErrSessionExpired
	}
	if s.clock().After(session.expiresAt) {
		delete(s.sessions, token)
		return "", ErrSessionExpired
	}
	return session.username, nil
}

// Logout discards the session token.
func (s *AuthService) Logout(token string) {
	if token == "" {
		return
	}
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// ActiveSessions reports live sessions. Used by the status log loop.
func (s *AuthService) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeExpiredLocked(s.clock())
	return len(s.sessions)
}

func (s *AuthService) purgeExpiredLocked(now time.Time) {
	for token, session := range s.sessions {
		if now.After(session.expiresAt) {
			delete(s.sessions, token)
		}
	}
}

// generateSessionToken returns 32 random bytes hex encoded.
func generateSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
