package public

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/moojpayam/api/internal/http/handlers/shared"
	"github.com/moojpayam/api/internal/models"
	"github.com/moojpayam/api/internal/service"

	"github.com/gin-gonic/gin"
)

// Crawler user agents that get server-rendered article pages. Everyone else
// is redirected to the SPA route.
var crawlerAgents = []string{
	"googlebot",
	"bingbot",
	"yandex",
	"duckduckbot",
	"baiduspider",
	"slurp",
	"twitterbot",
	"facebookexternalhit",
	"linkedinbot",
	"telegrambot",
	"whatsapp",
}

var blogSSRTemplate = template.Must(template.New("blog").Parse(`<!DOCTYPE html>
<html lang="fa" dir="rtl">
<head>
<meta charset="utf-8">
<title>{{.Title}} | موج پیام</title>
<meta name="description" content="{{.Summary}}">
<meta property="og:type" content="article">
<meta property="og:title" content="{{.Title}}">
<meta property="og:description" content="{{.Summary}}">
{{if .Thumbnail}}<meta property="og:image" content="{{.Thumbnail}}">{{end}}
<link rel="canonical" href="{{.Canonical}}">
</head>
<body>
<article>
<h1>{{.Title}}</h1>
{{if .Author}}<p>{{.Author}}</p>{{end}}
<div>{{.Content}}</div>
</article>
</body>
</html>
`))

type blogSSRData struct {
	Title     string
	Summary   string
	Author    string
	Thumbnail string
	Canonical string
	Content   template.HTML
}

// BlogPage serves /blog/:slug. Search crawlers get rendered HTML with the
// article's meta tags; browsers get a redirect into the SPA.
func (h *Handler) BlogPage(c *gin.Context) {
	slug := c.Param("slug")

	if !isCrawler(c.GetHeader("User-Agent")) {
		target := strings.TrimRight(h.Config.Frontend.URL, "/") + "/blog/" + slug
		c.Redirect(http.StatusFound, target)
		return
	}

	post, err := h.BlogService.GetPublishedBySlug(slug)
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.String(http.StatusNotFound, "not found")
	case err != nil:
		shared.RequestLog(c).Errorw("blog_ssr_failed", "slug", slug, "error", err)
		c.String(http.StatusInternalServerError, "internal error")
	default:
		h.renderBlogSSR(c, post)
	}
}

func (h *Handler) renderBlogSSR(c *gin.Context, post *models.BlogPost) {
	data := blogSSRData{
		Title:     post.Title,
		Summary:   post.Summary,
		Author:    post.Author,
		Thumbnail: post.Thumbnail,
		Canonical: strings.TrimRight(h.Config.Frontend.URL, "/") + "/blog/" + post.Slug,
		// Article bodies come from the dashboard editor, which is
		// admin-only input.
		Content: template.HTML(post.Content),
	}
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := blogSSRTemplate.Execute(c.Writer, data); err != nil {
		shared.RequestLog(c).Errorw("blog_ssr_render_failed", "slug", post.Slug, "error", err)
	}
}

func isCrawler(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	for _, agent := range crawlerAgents {
		if strings.Contains(ua, agent) {
			return true
		}
	}
	return false
}
