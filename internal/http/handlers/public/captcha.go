package public

import (
	"github.com/moojpayam/api/internal/http/handlers/shared"
	"github.com/moojpayam/api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CaptchaImage issues an image captcha for the admin login form.
func (h *Handler) CaptchaImage(c *gin.Context) {
	id, image, err := h.CaptchaService.Generate()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{
		"captcha_id": id,
		"image":      image,
		"required":   h.CaptchaService.LoginEnabled(),
	})
}
