package public

import (
	"errors"

	"github.com/moojpayam/api/internal/http/handlers/shared"
	"github.com/moojpayam/api/internal/http/response"
	"github.com/moojpayam/api/internal/repository"
	"github.com/moojpayam/api/internal/service"

	"github.com/gin-gonic/gin"
)

// ListBlogs returns published posts for the public site.
func (h *Handler) ListBlogs(c *gin.Context) {
	page, pageSize := shared.QueryPagination(c)
	posts, total, err := h.BlogService.List(repository.BlogListFilter{
		Page:          page,
		PageSize:      pageSize,
		Search:        c.Query("search"),
		Tag:           c.Query("tag"),
		OnlyPublished: true,
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, posts, shared.BuildPagination(page, pageSize, total))
}

// GetBlogByID returns one published post by id.
func (h *Handler) GetBlogByID(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}
	post, err := h.BlogService.GetPublishedByID(id)
	switch {
	case errors.Is(err, service.ErrNotFound):
		shared.RespondError(c, response.CodeNotFound, "error.blog_not_found", nil)
	case err != nil:
		shared.RespondError(c, response.CodeInternal, "error.fetch_failed", err)
	default:
		response.Success(c, post)
	}
}

// GetBlogBySlug returns one published post.
func (h *Handler) GetBlogBySlug(c *gin.Context) {
	post, err := h.BlogService.GetPublishedBySlug(c.Param("slug"))
	switch {
	case errors.Is(err, service.ErrNotFound):
		shared.RespondError(c, response.CodeNotFound, "error.blog_not_found", nil)
	case err != nil:
		shared.RespondError(c, response.CodeInternal, "error.fetch_failed", err)
	default:
		response.Success(c, post)
	}
}

// GetAnnouncement returns the current announcement, or null when none is in
// its display window.
func (h *Handler) GetAnnouncement(c *gin.Context) {
	items, err := h.AnnouncementService.ListActive()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	if len(items) == 0 {
		response.Success(c, nil)
		return
	}
	response.Success(c, items[0])
}

// ListPricingPlans returns active pricing plans.
func (h *Handler) ListPricingPlans(c *gin.Context) {
	plans, err := h.PricingService.ListActive()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	response.Success(c, plans)
}
