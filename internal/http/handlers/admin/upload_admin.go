package admin

import (
	"errors"
	"strings"

	"github.com/moojpayam/api/internal/constants"
	"github.com/moojpayam/api/internal/http/handlers/shared"
	"github.com/moojpayam/api/internal/http/response"
	"github.com/moojpayam/api/internal/i18n"
	"github.com/moojpayam/api/internal/service"

	"github.com/gin-gonic/gin"
)

// UploadImage stores one dashboard image.
func (h *Handler) UploadImage(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.upload_failed", err)
		return
	}

	file, err := h.UploadService.Save(header)
	switch {
	case errors.Is(err, service.ErrFileTooLarge):
		shared.RespondError(c, response.CodeBadRequest, "error.upload_too_large", nil)
	case errors.Is(err, service.ErrUnsupportedMIME):
		shared.RespondError(c, response.CodeBadRequest, "error.upload_invalid_type", nil)
	case errors.Is(err, service.ErrInvalidInput):
		shared.RespondError(c, response.CodeBadRequest, "error.upload_invalid_type", err)
	case err != nil:
		shared.RespondError(c, response.CodeInternal, "error.upload_failed", err)
	default:
		h.recordUploadAudit(c, "image_uploaded", gin.H{"name": file.Name, "size": file.Size})
		response.Success(c, gin.H{
			"imageUrl": file.URL,
			"name":     file.Name,
			"size":     file.Size,
		})
	}
}

// ListImages returns stored images.
func (h *Handler) ListImages(c *gin.Context) {
	files, err := h.UploadService.List()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	response.Success(c, files)
}

// DeleteImage removes a stored image. The route uses a wildcard parameter
// because stored names carry date subdirectories.
func (h *Handler) DeleteImage(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("name"), "/")
	err := h.UploadService.Delete(name)
	switch {
	case errors.Is(err, service.ErrNotFound):
		shared.RespondError(c, response.CodeNotFound, "error.image_not_found", nil)
	case errors.Is(err, service.ErrInvalidInput):
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
	case err != nil:
		shared.RespondError(c, response.CodeInternal, "error.save_failed", err)
	default:
		h.recordUploadAudit(c, "image_deleted", gin.H{"name": name})
		response.SuccessWithMsg(c, i18n.T("message.deleted"), nil)
	}
}

func (h *Handler) recordUploadAudit(c *gin.Context, action string, details gin.H) {
	h.AuditService.Record(shared.AdminUser(c), action,
		constants.AuditCategoryUpload, constants.SeverityInfo,
		c.ClientIP(), requestID(c), details)
}
