package admin

import (
	"time"

	"github.com/moojpayam/api/internal/constants"
	"github.com/moojpayam/api/internal/http/handlers/shared"
	"github.com/moojpayam/api/internal/http/response"
	"github.com/moojpayam/api/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListAuditLogs returns audit rows matching the query filters.
func (h *Handler) ListAuditLogs(c *gin.Context) {
	filter := h.auditFilterFromQuery(c)
	logs, total, err := h.AuditService.List(filter)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, logs, shared.BuildPagination(filter.Page, filter.PageSize, total))
}

// ExportAuditLogs downloads matching rows as CSV.
func (h *Handler) ExportAuditLogs(c *gin.Context) {
	filter := h.auditFilterFromQuery(c)
	data, err := h.AuditService.ExportCSV(filter)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	h.AuditService.Record(shared.AdminUser(c), "audit_logs_exported",
		constants.AuditCategoryExport, constants.SeverityInfo,
		c.ClientIP(), requestID(c), nil)

	filename := "audit-logs-" + time.Now().Format("2006-01-02") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "text/csv; charset=utf-8", data)
}

func (h *Handler) auditFilterFromQuery(c *gin.Context) repository.AuditLogListFilter {
	page, pageSize := shared.QueryPagination(c)
	filter := repository.AuditLogListFilter{
		Page:      page,
		PageSize:  pageSize,
		AdminUser: c.Query("admin_user"),
		Action:    c.Query("action"),
		Category:  c.Query("category"),
		Severity:  c.Query("severity"),
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.CreatedFrom = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.CreatedTo = &t
		}
	}
	return filter
}
