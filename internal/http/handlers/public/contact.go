package public

import (
	"errors"

	"github.com/moojpayam/api/internal/http/handlers/shared"
	"github.com/moojpayam/api/internal/http/response"
	"github.com/moojpayam/api/internal/i18n"
	"github.com/moojpayam/api/internal/service"

	"github.com/gin-gonic/gin"
)

type contactRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email"`
	Phone       string `json:"phone" binding:"required"`
	Subject     string `json:"subject" binding:"required"`
	Message     string `json:"message" binding:"required"`
	OtpVerified bool   `json:"otpVerified"`
	Proof       string `json:"proof"`
}

// SendEmail forwards a contact form submission by email. The request must
// carry the proof token a successful OTP verification handed out.
func (h *Handler) SendEmail(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.contact_fields_required", err)
		return
	}

	msg := service.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}
	err := h.ContactService.Submit(msg, req.OtpVerified, req.Proof)
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		shared.RespondError(c, response.CodeBadRequest, "error.contact_fields_required", err)
	case errors.Is(err, service.ErrOtpNotVerified):
		shared.RespondError(c, response.CodeForbidden, "error.otp_not_verified", nil)
	case errors.Is(err, service.ErrDeliveryError):
		shared.RespondError(c, response.CodeInternal, "error.email_send_failed", err)
	case err != nil:
		shared.RespondError(c, response.CodeInternal, "error.internal", err)
	default:
		response.SuccessWithMsg(c, i18n.T("message.contact_sent"), nil)
	}
}
