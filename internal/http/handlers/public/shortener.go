package public

import (
	"errors"
	"net/http"

	"github.com/moojpayam/api/internal/http/handlers/shared"
	"github.com/moojpayam/api/internal/http/response"
	"github.com/moojpayam/api/internal/service"

	"github.com/gin-gonic/gin"
)

type shortenRequest struct {
	URL      string `json:"url" binding:"required"`
	Category string `json:"category"`
}

// ShortenURL creates (or returns) the short link for a URL.
func (h *Handler) ShortenURL(c *gin.Context) {
	var req shortenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.short_url_invalid", err)
		return
	}

	link, err := h.ShortenerService.Shorten(req.URL, req.Category)
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		shared.RespondError(c, response.CodeBadRequest, "error.short_url_invalid", nil)
	case err != nil:
		shared.RespondError(c, response.CodeInternal, "error.save_failed", err)
	default:
		response.Success(c, gin.H{
			"code":      link.ShortCode,
			"short_url": h.ShortenerService.ShortURL(link.ShortCode),
			"long_url":  link.LongURL,
			"category":  link.Category,
		})
	}
}

// ResolveShortLink redirects a short code to its long URL.
func (h *Handler) ResolveShortLink(c *gin.Context) {
	longURL, err := h.ShortenerService.Resolve(c.Param("code"))
	switch {
	case errors.Is(err, service.ErrNotFound):
		shared.RespondError(c, response.CodeNotFound, "error.short_link_not_found", nil)
	case err != nil:
		shared.RespondError(c, response.CodeInternal, "error.fetch_failed", err)
	default:
		c.Redirect(http.StatusMovedPermanently, longURL)
	}
}
