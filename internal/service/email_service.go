package service

import (
	"crypto/tls"
	"fmt"
	"mime"
	"net/smtp"
	"strings"
	"time"

	"github.com/moojpayam/api/internal/config"
	"github.com/moojpayam/api/internal/logger"
)

// EmailService delivers HTML mail over SMTP. It supports implicit SSL,
// STARTTLS and plain connections depending on configuration.
type EmailService struct {
	cfg config.EmailConfig
}

// NewEmailService creates the email service.
func NewEmailService(cfg config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// Enabled reports whether SMTP delivery is configured.
func (s *EmailService) Enabled() bool {
	return s.cfg.Enabled && s.cfg.Host != "" && s.cfg.Recipient != ""
}

// SendHTML delivers an HTML message to the configured recipient.
func (s *EmailService) SendHTML(subject, htmlBody, replyTo string) error {
	if !s.Enabled() {
		return fmt.Errorf("%w: smtp not configured", ErrDeliveryError)
	}

	from := s.cfg.From
	if from == "" {
		from = s.cfg.Username
	}

	msg := s.buildMessage(from, s.cfg.Recipient, subject, htmlBody, replyTo)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	var err error
	switch {
	case s.cfg.UseSSL:
		err = s.sendSSL(addr, auth, from, msg)
	default:
		// smtp.SendMail negotiates STARTTLS on its own when the server
		// advertises it.
		err = smtp.SendMail(addr, auth, from, []string{s.cfg.Recipient}, msg)
	}
	if err != nil {
		logger.Errorw("email_send_failed", "host", s.cfg.Host, "error", err)
		return fmt.Errorf("%w: %v", ErrDeliveryError, err)
	}

	logger.Infow("email_sent", "to", s.cfg.Recipient, "subject", subject)
	return nil
}

// sendSSL speaks SMTP over an implicit TLS connection (typically port 465).
func (s *EmailService) sendSSL(addr string, auth smtp.Auth, from string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.cfg.Host})
	if err != nil {
		return err
	}
	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(s.cfg.Recipient); err != nil {
		return err
	}
	writer, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := writer.Write(msg); err != nil {
		writer.Close()
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	return client.Quit()
}

// buildMessage assembles a single-part HTML MIME message. Non-ASCII headers
// use Q-encoding so Persian subjects survive the transport.
func (s *EmailService) buildMessage(from, to, subject, htmlBody, replyTo string) []byte {
	fromHeader := from
	if s.cfg.FromName != "" {
		fromHeader = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", s.cfg.FromName), from)
	}

	var b strings.Builder
	b.WriteString("From: " + fromHeader + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	if replyTo != "" {
		b.WriteString("Reply-To: " + replyTo + "\r\n")
	}
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}
