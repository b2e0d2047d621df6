package admin

import (
	"errors"

	"github.com/moojpayam/api/internal/constants"
	"github.com/moojpayam/api/internal/http/handlers/shared"
	"github.com/moojpayam/api/internal/http/response"
	"github.com/moojpayam/api/internal/i18n"
	"github.com/moojpayam/api/internal/repository"
	"github.com/moojpayam/api/internal/service"

	"github.com/gin-gonic/gin"
)

type blogCreateRequest struct {
	Slug        string                 `json:"slug" binding:"required"`
	Title       string                 `json:"title" binding:"required"`
	Summary     string                 `json:"summary"`
	Content     string                 `json:"content"`
	Author      string                 `json:"author"`
	Thumbnail   string                 `json:"thumbnail"`
	Tags        []string               `json:"tags"`
	SeoMeta     map[string]interface{} `json:"seo_meta"`
	IsPublished bool                   `json:"is_published"`
}

type blogUpdateRequest struct {
	Slug        *string                `json:"slug"`
	Title       *string                `json:"title"`
	Summary     *string                `json:"summary"`
	Content     *string                `json:"content"`
	Author      *string                `json:"author"`
	Thumbnail   *string                `json:"thumbnail"`
	Tags        []string               `json:"tags"`
	SeoMeta     map[string]interface{} `json:"seo_meta"`
	IsPublished *bool                  `json:"is_published"`
}

// ListBlogs returns every post, drafts included.
func (h *Handler) ListBlogs(c *gin.Context) {
	page, pageSize := shared.QueryPagination(c)
	posts, total, err := h.BlogService.List(repository.BlogListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
		Tag:      c.Query("tag"),
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, posts, shared.BuildPagination(page, pageSize, total))
}

// GetBlog returns one post for editing.
func (h *Handler) GetBlog(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}
	post, err := h.BlogService.GetByID(id)
	switch {
	case errors.Is(err, service.ErrNotFound):
		shared.RespondError(c, response.CodeNotFound, "error.blog_not_found", nil)
	case err != nil:
		shared.RespondError(c, response.CodeInternal, "error.fetch_failed", err)
	default:
		response.Success(c, post)
	}
}

// CreateBlog inserts a post.
func (h *Handler) CreateBlog(c *gin.Context) {
	var req blogCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	post, err := h.BlogService.Create(service.BlogCreateInput{
		Slug:        req.Slug,
		Title:       req.Title,
		Summary:     req.Summary,
		Content:     req.Content,
		Author:      req.Author,
		Thumbnail:   req.Thumbnail,
		Tags:        req.Tags,
		SeoMeta:     req.SeoMeta,
		IsPublished: req.IsPublished,
	})
	switch {
	case errors.Is(err, service.ErrSlugExists):
		shared.RespondError(c, response.CodeBadRequest, "error.slug_exists", nil)
	case errors.Is(err, service.ErrInvalidInput):
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
	case err != nil:
		shared.RespondError(c, response.CodeInternal, "error.save_failed", err)
	default:
		h.recordContentAudit(c, "blog_created", gin.H{"id": post.ID, "slug": post.Slug})
		response.Success(c, post)
	}
}

// UpdateBlog applies a partial update.
func (h *Handler) UpdateBlog(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}
	var req blogUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	post, err := h.BlogService.Update(id, service.BlogUpdateInput{
		Slug:        req.Slug,
		Title:       req.Title,
		Summary:     req.Summary,
		Content:     req.Content,
		Author:      req.Author,
		Thumbnail:   req.Thumbnail,
		Tags:        req.Tags,
		SeoMeta:     req.SeoMeta,
		IsPublished: req.IsPublished,
	})
	switch {
	case errors.Is(err, service.ErrNotFound):
		shared.RespondError(c, response.CodeNotFound, "error.blog_not_found", nil)
	case errors.Is(err, service.ErrSlugExists):
		shared.RespondError(c, response.CodeBadRequest, "error.slug_exists", nil)
	case errors.Is(err, service.ErrInvalidInput):
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
	case err != nil:
		shared.RespondError(c, response.CodeInternal, "error.save_failed", err)
	default:
		h.recordContentAudit(c, "blog_updated", gin.H{"id": post.ID, "slug": post.Slug})
		response.Success(c, post)
	}
}

// DeleteBlog removes a post.
func (h *Handler) DeleteBlog(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}
	err := h.BlogService.Delete(id)
	switch {
	case errors.Is(err, service.ErrNotFound):
		shared.RespondError(c, response.CodeNotFound, "error.blog_not_found", nil)
	case err != nil:
		shared.RespondError(c, response.CodeInternal, "error.save_failed", err)
	default:
		h.recordContentAudit(c, "blog_deleted", gin.H{"id": id})
		response.SuccessWithMsg(c, i18n.T("message.deleted"), nil)
	}
}

func (h *Handler) recordContentAudit(c *gin.Context, action string, details gin.H) {
	h.AuditService.Record(shared.AdminUser(c), action,
		constants.AuditCategoryContent, constants.SeverityInfo,
		c.ClientIP(), requestID(c), details)
}
