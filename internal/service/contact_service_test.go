package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/moojpayam/api/internal/config"
)

func newTestContactService(t *testing.T) (*ContactService, *OtpService) {
	t.Helper()
	otp := newTestOtpService(&fakeSmsSender{})
	// SMTP stays unconfigured so delivery attempts surface as ErrDeliveryError.
	email := NewEmailService(config.EmailConfig{})
	return NewContactService(email, otp), otp
}

func validContactMessage() ContactMessage {
	return ContactMessage{
		Name:    "علی رضایی",
		Email:   "ali@example.com",
		Phone:   "09121234567",
		Subject: "درخواست مشاوره",
		Message: "لطفا با من تماس بگیرید",
	}
}

func verifiedProof(t *testing.T, otp *OtpService, phone string) string {
	t.Helper()
	if err := otp.Send(context.Background(), phone); err != nil {
		t.Fatalf("send otp failed: %v", err)
	}
	proof, err := otp.Verify(phone, storedCode(t, otp, phone))
	if err != nil {
		t.Fatalf("verify otp failed: %v", err)
	}
	return proof
}

func TestContactSubmitRefusesUnverifiedClaim(t *testing.T) {
	svc, otp := newTestContactService(t)
	msg := validContactMessage()
	proof := verifiedProof(t, otp, msg.Phone)

	// Even with a valid proof in hand, a false client flag stops the
	// submission before any transport work.
	if err := svc.Submit(msg, false, proof); !errors.Is(err, ErrOtpNotVerified) {
		t.Fatalf("want ErrOtpNotVerified got %v", err)
	}
}

func TestContactSubmitRequiresValidProof(t *testing.T) {
	svc, _ := newTestContactService(t)
	msg := validContactMessage()

	if err := svc.Submit(msg, true, ""); !errors.Is(err, ErrOtpNotVerified) {
		t.Fatalf("empty proof want ErrOtpNotVerified got %v", err)
	}
	if err := svc.Submit(msg, true, "forged-token"); !errors.Is(err, ErrOtpNotVerified) {
		t.Fatalf("forged proof want ErrOtpNotVerified got %v", err)
	}
}

func TestContactSubmitConsumesProof(t *testing.T) {
	svc, otp := newTestContactService(t)
	msg := validContactMessage()
	proof := verifiedProof(t, otp, msg.Phone)

	// SMTP is not configured, so a consumed proof shows up as a delivery
	// error rather than a verification error.
	if err := svc.Submit(msg, true, proof); !errors.Is(err, ErrDeliveryError) {
		t.Fatalf("want ErrDeliveryError got %v", err)
	}
	if err := svc.Submit(msg, true, proof); !errors.Is(err, ErrOtpNotVerified) {
		t.Fatalf("replayed proof want ErrOtpNotVerified got %v", err)
	}
}

func TestContactValidation(t *testing.T) {
	svc, _ := newTestContactService(t)

	cases := []struct {
		name   string
		mutate func(*ContactMessage)
	}{
		{name: "empty name", mutate: func(m *ContactMessage) { m.Name = "" }},
		{name: "bad email", mutate: func(m *ContactMessage) { m.Email = "not-an-email" }},
		{name: "bad phone", mutate: func(m *ContactMessage) { m.Phone = "021555" }},
		{name: "empty subject", mutate: func(m *ContactMessage) { m.Subject = "" }},
		{name: "empty message", mutate: func(m *ContactMessage) { m.Message = "" }},
		{name: "oversized message", mutate: func(m *ContactMessage) { m.Message = strings.Repeat("ا", 5001) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg := validContactMessage()
			tc.mutate(&msg)
			if err := svc.Submit(msg, true, "whatever"); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("want ErrInvalidInput got %v", err)
			}
		})
	}
}

func TestContactEmailIsOptional(t *testing.T) {
	svc, _ := newTestContactService(t)
	msg := validContactMessage()
	msg.Email = ""

	// Passing validation with an empty email means the flow reaches the
	// verification check.
	if err := svc.Submit(msg, false, ""); !errors.Is(err, ErrOtpNotVerified) {
		t.Fatalf("want ErrOtpNotVerified got %v", err)
	}
}

func TestRenderContactEmailEscapesHTML(t *testing.T) {
	msg := validContactMessage()
	msg.Message = `<script>alert("x")</script>`
	body := renderContactEmail(msg)
	if strings.Contains(body, "<script>") {
		t.Fatalf("message content must be escaped, got %s", body)
	}
	if !strings.Contains(body, msg.Phone) {
		t.Fatalf("body should carry the phone number")
	}
}
