package admin

import (
	"errors"
	"time"

	"github.com/moojpayam/api/internal/http/handlers/shared"
	"github.com/moojpayam/api/internal/http/response"
	"github.com/moojpayam/api/internal/i18n"
	"github.com/moojpayam/api/internal/service"

	"github.com/gin-gonic/gin"
)

type announcementRequest struct {
	Title    string     `json:"title" binding:"required"`
	Body     string     `json:"body" binding:"required"`
	Link     string     `json:"link"`
	IsActive bool       `json:"is_active"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

func (r announcementRequest) toInput() service.AnnouncementInput {
	return service.AnnouncementInput{
		Title:    r.Title,
		Body:     r.Body,
		Link:     r.Link,
		IsActive: r.IsActive,
		StartsAt: r.StartsAt,
		EndsAt:   r.EndsAt,
	}
}

// ListAnnouncements returns every announcement for the dashboard.
func (h *Handler) ListAnnouncements(c *gin.Context) {
	items, err := h.AnnouncementService.ListAll()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	response.Success(c, items)
}

// CreateAnnouncement inserts an announcement.
func (h *Handler) CreateAnnouncement(c *gin.Context) {
	var req announcementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.AnnouncementService.Create(req.toInput())
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
	case err != nil:
		shared.RespondError(c, response.CodeInternal, "error.save_failed", err)
	default:
		h.recordContentAudit(c, "announcement_created", gin.H{"id": item.ID})
		response.Success(c, item)
	}
}

// UpdateAnnouncement replaces an announcement.
func (h *Handler) UpdateAnnouncement(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}
	var req announcementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.AnnouncementService.Update(id, req.toInput())
	switch {
	case errors.Is(err, service.ErrNotFound):
		shared.RespondError(c, response.CodeNotFound, "error.announcement_not_found", nil)
	case errors.Is(err, service.ErrInvalidInput):
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
	case err != nil:
		shared.RespondError(c, response.CodeInternal, "error.save_failed", err)
	default:
		h.recordContentAudit(c, "announcement_updated", gin.H{"id": item.ID})
		response.Success(c, item)
	}
}

// DeleteAnnouncement removes an announcement.
func (h *Handler) DeleteAnnouncement(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}
	err := h.AnnouncementService.Delete(id)
	switch {
	case errors.Is(err, service.ErrNotFound):
		shared.RespondError(c, response.CodeNotFound, "error.announcement_not_found", nil)
	case err != nil:
		shared.RespondError(c, response.CodeInternal, "error.save_failed", err)
	default:
		h.recordContentAudit(c, "announcement_deleted", gin.H{"id": id})
		response.SuccessWithMsg(c, i18n.T("message.deleted"), nil)
	}
}
