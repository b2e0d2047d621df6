package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/moojpayam/api/internal/config"
	"github.com/moojpayam/api/internal/models"
	"github.com/moojpayam/api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestShortener(t *testing.T) *ShortenerService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.ShortLink{}); err != nil {
		t.Fatalf("auto migrate short links failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.Shortener.CodeLength = 5
	return NewShortenerService(repository.NewShortLinkRepository(db), cfg)
}

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "lowercases scheme and host", input: "HTTPS://Example.COM/Blog", want: "https://example.com/Blog", ok: true},
		{name: "strips query", input: "https://example.com/blog?utm_source=x", want: "https://example.com/blog", ok: true},
		{name: "strips fragment", input: "https://example.com/blog#section", want: "https://example.com/blog", ok: true},
		{name: "strips trailing slash", input: "https://example.com/blog/", want: "https://example.com/blog", ok: true},
		{name: "bare host", input: "https://example.com/", want: "https://example.com", ok: true},
		{name: "rejects ftp", input: "ftp://example.com/file", ok: false},
		{name: "rejects relative", input: "/blog/post", ok: false},
		{name: "rejects empty", input: "", ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeURL(tc.input)
			if tc.ok && err != nil {
				t.Fatalf("normalize failed: %v", err)
			}
			if !tc.ok {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("want ErrInvalidInput got %v", err)
				}
				return
			}
			if got != tc.want {
				t.Fatalf("normalized want %s got %s", tc.want, got)
			}
		})
	}
}

func TestShortenDeduplicatesByNormalizedURL(t *testing.T) {
	s := newTestShortener(t)

	first, err := s.Shorten("https://moojpayam.ir/blog/intro?utm_source=tg", "blog")
	if err != nil {
		t.Fatalf("shorten failed: %v", err)
	}
	if !strings.HasPrefix(first.ShortCode, "blog-") {
		t.Fatalf("code want blog- prefix got %s", first.ShortCode)
	}

	// Same page with different tracking params maps to the same link.
	second, err := s.Shorten("https://moojpayam.ir/blog/intro?utm_source=ig#top", "blog")
	if err != nil {
		t.Fatalf("shorten failed: %v", err)
	}
	if second.ShortCode != first.ShortCode {
		t.Fatalf("dedup want %s got %s", first.ShortCode, second.ShortCode)
	}
}

func TestShortenUnknownCategoryFallsBackToGeneral(t *testing.T) {
	s := newTestShortener(t)
	link, err := s.Shorten("https://moojpayam.ir/campaign-x", "weird")
	if err != nil {
		t.Fatalf("shorten failed: %v", err)
	}
	if link.Category != "general" || !strings.HasPrefix(link.ShortCode, "general-") {
		t.Fatalf("want general namespace got %s / %s", link.Category, link.ShortCode)
	}
}

func TestResolveBumpsHits(t *testing.T) {
	s := newTestShortener(t)
	link, err := s.Shorten("https://moojpayam.ir/pricing-page", "pricing")
	if err != nil {
		t.Fatalf("shorten failed: %v", err)
	}

	longURL, err := s.Resolve(link.ShortCode)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if longURL != "https://moojpayam.ir/pricing-page" {
		t.Fatalf("long url want original got %s", longURL)
	}
	if _, err := s.Resolve(link.ShortCode); err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}

	links, _, err := s.List(1, 50)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, row := range links {
		if row.ShortCode == link.ShortCode && row.Hits != 2 {
			t.Fatalf("hits want 2 got %d", row.Hits)
		}
	}
}

func TestResolveUnknownCode(t *testing.T) {
	s := newTestShortener(t)
	if _, err := s.Resolve("blog-zzzzz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound got %v", err)
	}
}

func TestShortURLUsesConfiguredBase(t *testing.T) {
	cfg := &config.Config{}
	cfg.Shortener.CodeLength = 5
	cfg.Shortener.BaseURL = "https://mooj.ir/"
	s := NewShortenerService(nil, cfg)
	if got := s.ShortURL("blog-abc12"); got != "https://mooj.ir/s/blog-abc12" {
		t.Fatalf("short url want https://mooj.ir/s/blog-abc12 got %s", got)
	}
}
