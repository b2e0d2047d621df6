package admin

import (
	"errors"
	"net/http"

	"github.com/moojpayam/api/internal/constants"
	"github.com/moojpayam/api/internal/http/handlers/shared"
	"github.com/moojpayam/api/internal/http/response"
	"github.com/moojpayam/api/internal/i18n"
	"github.com/moojpayam/api/internal/service"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username      string `json:"username" binding:"required"`
	Password      string `json:"password" binding:"required"`
	CaptchaID     string `json:"captcha_id"`
	CaptchaAnswer string `json:"captcha_answer"`
}

// Login authenticates the configured admin and sets the session cookie.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.CaptchaService.VerifyLogin(req.CaptchaID, req.CaptchaAnswer); err != nil {
		key := "error.captcha_invalid"
		if errors.Is(err, service.ErrCaptchaRequired) {
			key = "error.captcha_required"
		}
		shared.RespondError(c, response.CodeBadRequest, key, nil)
		return
	}

	token, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		h.AuditService.Record(req.Username, constants.AuditActionLoginFailed,
			constants.AuditCategoryAuth, constants.SeverityWarning,
			c.ClientIP(), requestID(c), nil)
		shared.RespondError(c, response.CodeUnauthorized, "error.login_invalid", nil)
		return
	}

	h.AuditService.Record(req.Username, constants.AuditActionLoginSuccess,
		constants.AuditCategoryAuth, constants.SeverityInfo,
		c.ClientIP(), requestID(c), nil)

	maxAge := h.Config.Session.ExpireHours * 3600
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.AdminSessionCookie, token, maxAge, "/", "", h.secureCookies(), true)
	response.SuccessWithMsg(c, i18n.T("message.login_ok"), gin.H{
		"username": req.Username,
	})
}

// VerifySession reports whether the session cookie is still valid.
func (h *Handler) VerifySession(c *gin.Context) {
	token, _ := c.Cookie(constants.AdminSessionCookie)
	username, err := h.AuthService.Verify(token)
	if err != nil {
		shared.RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return
	}
	response.Success(c, gin.H{"username": username})
}

// Logout discards the session and clears the cookie.
func (h *Handler) Logout(c *gin.Context) {
	token, _ := c.Cookie(constants.AdminSessionCookie)
	h.AuthService.Logout(token)
	h.AuditService.Record(shared.AdminUser(c), constants.AuditActionLogout,
		constants.AuditCategoryAuth, constants.SeverityInfo,
		c.ClientIP(), requestID(c), nil)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.AdminSessionCookie, "", -1, "/", "", h.secureCookies(), true)
	response.SuccessWithMsg(c, i18n.T("message.logout_ok"), nil)
}

// secureCookies marks the session cookie Secure outside debug deployments.
func (h *Handler) secureCookies() bool {
	return h.Config.Server.Mode == "release"
}

func requestID(c *gin.Context) string {
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
