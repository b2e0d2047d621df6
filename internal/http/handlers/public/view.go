package public

import (
	"errors"

	"github.com/moojpayam/api/internal/http/handlers/shared"
	"github.com/moojpayam/api/internal/http/response"
	"github.com/moojpayam/api/internal/i18n"
	"github.com/moojpayam/api/internal/service"

	"github.com/gin-gonic/gin"
)

// RecordBlogView counts one view per (post, ip) pair.
func (h *Handler) RecordBlogView(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}

	counted, err := h.BlogService.RecordView(id, c.ClientIP())
	switch {
	case errors.Is(err, service.ErrNotFound):
		shared.RespondError(c, response.CodeNotFound, "error.blog_not_found", nil)
	case err != nil:
		shared.RespondError(c, response.CodeInternal, "error.save_failed", err)
	default:
		response.SuccessWithMsg(c, i18n.T("message.view_recorded"), gin.H{"counted": counted})
	}
}
