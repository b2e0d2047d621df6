package service

import "errors"

// Sentinel errors shared across services. Handlers translate these into
// business codes with errors.Is.
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session expired")

	ErrOtpNotFound    = errors.New("otp not found for this phone")
	ErrOtpExpired     = errors.New("otp expired")
	ErrOtpMismatch    = errors.New("otp code mismatch")
	ErrOtpNotVerified = errors.New("otp verification required")

	ErrCaptchaRequired = errors.New("captcha required")
	ErrCaptchaInvalid  = errors.New("captcha invalid")

	ErrSlugExists      = errors.New("slug already in use")
	ErrFileTooLarge    = errors.New("file exceeds size limit")
	ErrUnsupportedMIME = errors.New("unsupported file type")

	ErrGatewayError  = errors.New("sms gateway error")
	ErrDeliveryError = errors.New("email delivery error")
)
