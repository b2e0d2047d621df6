package service

import (
	"crypto/rand"
	"fmt"
	"net/url"
	"strings"

	"github.com/moojpayam/api/internal/config"
	"github.com/moojpayam/api/internal/constants"
	"github.com/moojpayam/api/internal/logger"
	"github.com/moojpayam/api/internal/models"
	"github.com/moojpayam/api/internal/repository"
)

const codeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ShortenerService creates and resolves category-namespaced short links.
// Shortening the same URL twice returns the existing code; the dedup key is
// the normalized URL (scheme+host lowered, query and fragment stripped).
type ShortenerService struct {
	repo       repository.ShortLinkRepository
	codeLength int
	baseURL    string
}

// NewShortenerService creates the shortener service.
func NewShortenerService(repo repository.ShortLinkRepository, cfg *config.Config) *ShortenerService {
	length := cfg.Shortener.CodeLength
	if length < 4 || length > 16 {
		length = 5
	}
	return &ShortenerService{
		repo:       repo,
		codeLength: length,
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.Shortener.BaseURL), "/"),
	}
}

// Shorten returns the short link for longURL, creating it when new.
func (s *ShortenerService) Shorten(longURL, category string) (*models.ShortLink, error) {
	normalized, err := NormalizeURL(longURL)
	if err != nil {
		return nil, err
	}
	category = normalizeCategory(category)

	existing, err := s.repo.GetByNormalizedURL(normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	// Retry a few times in case the random suffix collides.
	for attempt := 0; attempt < 5; attempt++ {
		suffix, err := randomCode(s.codeLength)
		if err != nil {
			return nil, fmt.Errorf("shortener: generate code: %w", err)
		}
		link := &models.ShortLink{
			ShortCode:     category + "-" + suffix,
			LongURL:       strings.TrimSpace(longURL),
			NormalizedURL: normalized,
			Category:      category,
		}
		if err := s.repo.Create(link); err == nil {
			logger.Infow("short_link_created", "code", link.ShortCode, "category", category)
			return link, nil
		}
		// The unique index rejected either the code or a concurrent insert
		// of the same normalized URL. Re-check the dedup key before retrying.
		existing, lookupErr := s.repo.GetByNormalizedURL(normalized)
		if lookupErr == nil && existing != nil {
			return existing, nil
		}
	}
	return nil, fmt.Errorf("shortener: could not allocate a unique code")
}

// Resolve returns the long URL for code and bumps the hit counter.
func (s *ShortenerService) Resolve(code string) (string, error) {
	code = strings.TrimSpace(code)
	link, err := s.repo.GetByCode(code)
	if err != nil {
		return "", err
	}
	if link == nil {
		return "", ErrNotFound
	}
	if err := s.repo.IncrementHits(code); err != nil {
		logger.Warnw("short_link_hit_count_failed", "code", code, "error", err)
	}
	return link.LongURL, nil
}

// List returns short links for the dashboard.
func (s *ShortenerService) List(page, pageSize int) ([]models.ShortLink, int64, error) {
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return s.repo.List(page, pageSize)
}

// Delete removes a short link.
func (s *ShortenerService) Delete(id uint) error {
	return s.repo.Delete(id)
}

// ShortURL renders the absolute short URL when a base is configured.
func (s *ShortenerService) ShortURL(code string) string {
	if s.baseURL == "" {
		return "/s/" + code
	}
	return s.baseURL + "/s/" + code
}

// NormalizeURL lowers the scheme and host and strips query, fragment and the
// trailing slash, producing the dedup key.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", fmt.Errorf("%w: url", ErrInvalidInput)
	}
	path := strings.TrimRight(parsed.EscapedPath(), "/")
	return strings.ToLower(parsed.Scheme) + "://" + strings.ToLower(parsed.Host) + path, nil
}

func normalizeCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	switch category {
	case constants.ShortLinkCategoryBlog,
		constants.ShortLinkCategoryPricing,
		constants.ShortLinkCategoryPage:
		return category
	default:
		return constants.ShortLinkCategoryGeneral
	}
}

func randomCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
