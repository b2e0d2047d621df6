package admin

import (
	"time"

	"github.com/moojpayam/api/internal/http/handlers/shared"
	"github.com/moojpayam/api/internal/http/response"
	"github.com/moojpayam/api/internal/repository"

	"github.com/gin-gonic/gin"
)

// Stats returns the dashboard overview numbers.
func (h *Handler) Stats(c *gin.Context) {
	_, publishedTotal, err := h.BlogService.List(repository.BlogListFilter{
		Page: 1, PageSize: 1, OnlyPublished: true,
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	_, blogTotal, err := h.BlogService.List(repository.BlogListFilter{
		Page: 1, PageSize: 1,
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	_, shortLinkTotal, err := h.ShortenerService.List(1, 1)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	auditLastDay, err := h.AuditService.CountSince(time.Now().Add(-24 * time.Hour))
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.Success(c, gin.H{
		"blogs_total":     blogTotal,
		"blogs_published": publishedTotal,
		"short_links":     shortLinkTotal,
		"audit_last_24h":  auditLastDay,
		"active_sessions": h.AuthService.ActiveSessions(),
		"pending_otps":    h.OtpService.PendingCount(),
	})
}
