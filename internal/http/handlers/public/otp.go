package public

import (
	"errors"

	"github.com/moojpayam/api/internal/http/handlers/shared"
	"github.com/moojpayam/api/internal/http/response"
	"github.com/moojpayam/api/internal/i18n"
	"github.com/moojpayam/api/internal/service"

	"github.com/gin-gonic/gin"
)

type sendOtpRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type verifyOtpRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// SendOtp generates and texts a verification code to the given phone.
func (h *Handler) SendOtp(c *gin.Context) {
	var req sendOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.invalid_phone", err)
		return
	}

	err := h.OtpService.Send(c.Request.Context(), req.Phone)
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		shared.RespondError(c, response.CodeBadRequest, "error.invalid_phone", nil)
	case errors.Is(err, service.ErrGatewayError):
		shared.RespondError(c, response.CodeInternal, "error.otp_send_failed", err)
	case err != nil:
		shared.RespondError(c, response.CodeInternal, "error.internal", err)
	default:
		response.SuccessWithMsg(c, i18n.T("message.otp_sent"), gin.H{
			"expires_in": h.OtpService.TTLSeconds(),
		})
	}
}

// VerifyOtp checks the submitted code and returns the proof token the
// contact endpoint requires.
func (h *Handler) VerifyOtp(c *gin.Context) {
	var req verifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	proof, err := h.OtpService.Verify(req.Phone, req.Code)
	switch {
	case errors.Is(err, service.ErrOtpNotFound):
		shared.RespondError(c, response.CodeNotFound, "error.otp_not_found", nil)
	case errors.Is(err, service.ErrOtpExpired):
		shared.RespondError(c, response.CodeBadRequest, "error.otp_expired", nil)
	case errors.Is(err, service.ErrOtpMismatch):
		shared.RespondError(c, response.CodeBadRequest, "error.otp_mismatch", nil)
	case err != nil:
		shared.RespondError(c, response.CodeInternal, "error.internal", err)
	default:
		response.SuccessWithMsg(c, i18n.T("message.otp_verified"), gin.H{
			"verified": true,
			"proof":    proof,
		})
	}
}
