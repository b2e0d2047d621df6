package service

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/moojpayam/api/internal/logger"
)

// PhonePattern matches Iranian mobile numbers with or without country code.
var PhonePattern = regexp.MustCompile(`^(\+98|0)?9\d{9}$`)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactMessage is a validated contact form submission.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// ContactService validates contact submissions and forwards them as HTML
// email. Submissions must carry a proof token minted by a successful OTP
// verification for the same phone number.
type ContactService struct {
	email *EmailService
	otp   *OtpService
}

// NewContactService creates the contact service.
func NewContactService(email *EmailService, otp *OtpService) *ContactService {
	return &ContactService{email: email, otp: otp}
}

// Submit checks the proof, validates the fields and delivers the email.
// otpVerified is the client's own claim; a false value short-circuits before
// any transport work, and a true value still has to survive the server-side
// proof check.
func (s *ContactService) Submit(msg ContactMessage, otpVerified bool, proofToken string) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Phone = strings.TrimSpace(msg.Phone)
	msg.Subject = strings.TrimSpace(msg.Subject)
	msg.Message = strings.TrimSpace(msg.Message)

	if err := validateContact(msg); err != nil {
		return err
	}
	if !otpVerified {
		return ErrOtpNotVerified
	}
	if err := s.otp.ConsumeProof(proofToken, msg.Phone); err != nil {
		return err
	}

	subject := fmt.Sprintf("پیام جدید از سایت: %s", msg.Subject)
	if err := s.email.SendHTML(subject, renderContactEmail(msg), msg.Email); err != nil {
		return err
	}

	logger.Infow("contact_message_delivered",
		"phone", maskPhone(msg.Phone),
		"subject", msg.Subject,
	)
	return nil
}

func validateContact(msg ContactMessage) error {
	switch {
	case msg.Name == "" || len(msg.Name) > 100:
		return fmt.Errorf("%w: name", ErrInvalidInput)
	case msg.Email != "" && !emailPattern.MatchString(msg.Email):
		return fmt.Errorf("%w: email", ErrInvalidInput)
	case !PhonePattern.MatchString(msg.Phone):
		return fmt.Errorf("%w: phone", ErrInvalidInput)
	case msg.Subject == "" || len(msg.Subject) > 200:
		return fmt.Errorf("%w: subject", ErrInvalidInput)
	case msg.Message == "" || len(msg.Message) > 5000:
		return fmt.Errorf("%w: message", ErrInvalidInput)
	}
	return nil
}

// renderContactEmail produces the right-to-left HTML body the operators read.
func renderContactEmail(msg ContactMessage) string {
	row := func(label, value string) string {
		return fmt.Sprintf(
			`<tr><td style="padding:8px;font-weight:bold;white-space:nowrap">%s</td><td style="padding:8px">%s</td></tr>`,
			label, html.EscapeString(value),
		)
	}

	var b strings.Builder
	b.WriteString(`<div dir="rtl" style="font-family:Tahoma,Arial,sans-serif">`)
	b.WriteString(`<h2>پیام جدید از فرم تماس موج پیام</h2>`)
	b.WriteString(`<table style="border-collapse:collapse;width:100%">`)
	b.WriteString(row("نام", msg.Name))
	b.WriteString(row("ایمیل", msg.Email))
	b.WriteString(row("شماره تماس", msg.Phone))
	b.WriteString(row("موضوع", msg.Subject))
	b.WriteString(`</table>`)
	b.WriteString(`<hr/><p style="white-space:pre-wrap">`)
	b.WriteString(html.EscapeString(msg.Message))
	b.WriteString(`</p></div>`)
	return b.String()
}
