package public

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/moojpayam/api/internal/config"
	"github.com/moojpayam/api/internal/models"
	"github.com/moojpayam/api/internal/provider"
	"github.com/moojpayam/api/internal/repository"
	"github.com/moojpayam/api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newSSRTestHandler(t *testing.T) *Handler {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.BlogPost{}, &models.BlogView{}); err != nil {
		t.Fatalf("auto migrate blog tables failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.Frontend.URL = "https://moojpayam.ir/"
	blogService := service.NewBlogService(repository.NewBlogRepository(db))
	if _, err := blogService.Create(service.BlogCreateInput{
		Slug:        "seo-test-post",
		Title:       "مقاله آزمایشی",
		Summary:     "خلاصه مقاله",
		Content:     "<p>متن کامل</p>",
		IsPublished: true,
	}); err != nil {
		t.Fatalf("seed post failed: %v", err)
	}

	return New(&provider.Container{Config: cfg, BlogService: blogService})
}

func getBlogPage(h *Handler, slug, userAgent string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/blog/:slug", h.BlogPage)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/blog/"+slug, nil)
	req.Header.Set("User-Agent", userAgent)
	r.ServeHTTP(w, req)
	return w
}

func TestBlogPageRedirectsBrowsers(t *testing.T) {
	h := newSSRTestHandler(t)
	w := getBlogPage(h, "seo-test-post", "Mozilla/5.0 (Windows NT 10.0) Chrome/120.0")

	if w.Code != http.StatusFound {
		t.Fatalf("browser want 302 got %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != "https://moojpayam.ir/blog/seo-test-post" {
		t.Fatalf("redirect target want spa route got %s", got)
	}
}

func TestBlogPageRendersForCrawlers(t *testing.T) {
	h := newSSRTestHandler(t)
	w := getBlogPage(h, "seo-test-post", "Mozilla/5.0 (compatible; Googlebot/2.1)")

	if w.Code != http.StatusOK {
		t.Fatalf("crawler want 200 got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `<meta property="og:title" content="مقاله آزمایشی">`) {
		t.Fatalf("rendered page missing og:title, body %s", body)
	}
	if !strings.Contains(body, `<link rel="canonical" href="https://moojpayam.ir/blog/seo-test-post">`) {
		t.Fatalf("rendered page missing canonical link, body %s", body)
	}
	if !strings.Contains(body, "<p>متن کامل</p>") {
		t.Fatalf("article body must render unescaped, body %s", body)
	}
}

func TestBlogPageUnknownSlugForCrawler(t *testing.T) {
	h := newSSRTestHandler(t)
	w := getBlogPage(h, "missing-post", "TelegramBot (like TwitterBot)")

	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown slug want 404 got %d", w.Code)
	}
}

func TestIsCrawler(t *testing.T) {
	cases := []struct {
		userAgent string
		want      bool
	}{
		{userAgent: "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)", want: true},
		{userAgent: "facebookexternalhit/1.1", want: true},
		{userAgent: "WhatsApp/2.23.20", want: true},
		{userAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0) Safari/604.1", want: false},
		{userAgent: "", want: false},
	}
	for _, tc := range cases {
		if got := isCrawler(tc.userAgent); got != tc.want {
			t.Fatalf("isCrawler(%q) want %v got %v", tc.userAgent, tc.want, got)
		}
	}
}
