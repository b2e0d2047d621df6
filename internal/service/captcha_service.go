package service

import (
	"time"

	"github.com/moojpayam/api/internal/config"

	"github.com/mojocn/base64Captcha"
)

// CaptchaService issues image captchas for the admin login form when the
// deployment enables them.
type CaptchaService struct {
	captcha *base64Captcha.Captcha
	enabled bool
}

// NewCaptchaService creates the captcha service.
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	length := cfg.Length
	if length <= 0 {
		length = 5
	}
	width := cfg.Width
	if width <= 0 {
		width = 240
	}
	height := cfg.Height
	if height <= 0 {
		height = 80
	}
	expire := time.Duration(cfg.ExpireSeconds) * time.Second
	if expire <= 0 {
		expire = 5 * time.Minute
	}
	maxStore := cfg.MaxStore
	if maxStore <= 0 {
		maxStore = 10240
	}

	driver := base64Captcha.NewDriverDigit(height, width, length, 0.7, 80)
	store := base64Captcha.NewMemoryStore(maxStore, expire)
	return &CaptchaService{
		captcha: base64Captcha.NewCaptcha(driver, store),
		enabled: cfg.LoginEnabled,
	}
}

// LoginEnabled reports whether the login form must carry a captcha answer.
func (s *CaptchaService) LoginEnabled() bool {
	return s.enabled
}

// Generate returns a captcha id plus the image as a base64 data URI.
func (s *CaptchaService) Generate() (id, b64 string, err error) {
	id, b64, _, err = s.captcha.Generate()
	return id, b64, err
}

// VerifyLogin checks the answer when login captchas are enabled.
func (s *CaptchaService) VerifyLogin(id, answer string) error {
	if !s.enabled {
		return nil
	}
	if id == "" || answer == "" {
		return ErrCaptchaRequired
	}
	if !s.captcha.Verify(id, answer, true) {
		return ErrCaptchaInvalid
	}
	return nil
}
