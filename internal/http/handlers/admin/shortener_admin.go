package admin

import (
	"github.com/moojpayam/api/internal/constants"
	"github.com/moojpayam/api/internal/http/handlers/shared"
	"github.com/moojpayam/api/internal/http/response"
	"github.com/moojpayam/api/internal/i18n"

	"github.com/gin-gonic/gin"
)

// ListShortLinks returns short links for the dashboard.
func (h *Handler) ListShortLinks(c *gin.Context) {
	page, pageSize := shared.QueryPagination(c)
	links, total, err := h.ShortenerService.List(page, pageSize)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, links, shared.BuildPagination(page, pageSize, total))
}

// DeleteShortLink removes a short link.
func (h *Handler) DeleteShortLink(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}
	if err := h.ShortenerService.Delete(id); err != nil {
		shared.RespondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}
	h.AuditService.Record(shared.AdminUser(c), "short_link_deleted",
		constants.AuditCategoryShortener, constants.SeverityInfo,
		c.ClientIP(), requestID(c), gin.H{"id": id})
	response.SuccessWithMsg(c, i18n.T("message.deleted"), nil)
}
