package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/moojpayam/api/internal/logger"
	"github.com/moojpayam/api/internal/models"
	"github.com/moojpayam/api/internal/repository"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9\x{0600}-\x{06FF}]+(?:-[a-z0-9\x{0600}-\x{06FF}]+)*$`)

// BlogCreateInput carries the fields for a new post.
type BlogCreateInput struct {
	Slug        string
	Title       string
	Summary     string
	Content     string
	Author      string
	Thumbnail   string
	Tags        []string
	SeoMeta     map[string]interface{}
	IsPublished bool
}

// BlogUpdateInput carries a partial post update. Nil fields stay unchanged.
type BlogUpdateInput struct {
	Slug        *string
	Title       *string
	Summary     *string
	Content     *string
	Author      *string
	Thumbnail   *string
	Tags        []string
	SeoMeta     map[string]interface{}
	IsPublished *bool
}

// BlogService manages blog posts and their view counters.
type BlogService struct {
	repo repository.BlogRepository
}

// NewBlogService creates the blog service.
func NewBlogService(repo repository.BlogRepository) *BlogService {
	return &BlogService{repo: repo}
}

// List returns posts matching the filter.
func (s *BlogService) List(filter repository.BlogListFilter) ([]models.BlogPost, int64, error) {
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	return s.repo.List(filter)
}

// GetByID fetches one post for the dashboard.
func (s *BlogService) GetByID(id uint) (*models.BlogPost, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// GetPublishedByID fetches one published post for the public site.
func (s *BlogService) GetPublishedByID(id uint) (*models.BlogPost, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.IsPublished {
		return nil, ErrNotFound
	}
	return post, nil
}

// GetPublishedBySlug fetches one published post for the public site.
func (s *BlogService) GetPublishedBySlug(slug string) (*models.BlogPost, error) {
	post, err := s.repo.GetBySlug(strings.TrimSpace(slug), true)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// Create validates and inserts a post.
func (s *BlogService) Create(input BlogCreateInput) (*models.BlogPost, error) {
	slug := strings.TrimSpace(strings.ToLower(input.Slug))
	if err := s.checkSlug(slug, nil); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title", ErrInvalidInput)
	}

	post := &models.BlogPost{
		Slug:        slug,
		Title:       strings.TrimSpace(input.Title),
		Summary:     input.Summary,
		Content:     input.Content,
		Author:      strings.TrimSpace(input.Author),
		Thumbnail:   input.Thumbnail,
		Tags:        models.StringList(input.Tags),
		SeoMeta:     models.JSON(input.SeoMeta),
		IsPublished: input.IsPublished,
	}
	if input.IsPublished {
		now := time.Now()
		post.PublishedAt = &now
	}
	if err := s.repo.Create(post); err != nil {
		return nil, err
	}
	logger.Infow("blog_post_created", "id", post.ID, "slug", post.Slug)
	return post, nil
}

// Update applies a partial update to a post.
func (s *BlogService) Update(id uint, input BlogUpdateInput) (*models.BlogPost, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	if input.Slug != nil {
		slug := strings.TrimSpace(strings.ToLower(*input.Slug))
		if slug != post.Slug {
			if err := s.checkSlug(slug, &id); err != nil {
				return nil, err
			}
			post.Slug = slug
		}
	}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, fmt.Errorf("%w: title", ErrInvalidInput)
		}
		post.Title = strings.TrimSpace(*input.Title)
	}
	if input.Summary != nil {
		post.Summary = *input.Summary
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.Author != nil {
		post.Author = strings.TrimSpace(*input.Author)
	}
	if input.Thumbnail != nil {
		post.Thumbnail = *input.Thumbnail
	}
	if input.Tags != nil {
		post.Tags = models.StringList(input.Tags)
	}
	if input.SeoMeta != nil {
		post.SeoMeta = models.JSON(input.SeoMeta)
	}
	if input.IsPublished != nil {
		// First publish stamps PublishedAt; unpublish keeps the stamp.
		if *input.IsPublished && !post.IsPublished && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
		post.IsPublished = *input.IsPublished
	}

	if err := s.repo.Update(post); err != nil {
		return nil, err
	}
	logger.Infow("blog_post_updated", "id", post.ID, "slug", post.Slug)
	return post, nil
}

// Delete removes a post.
func (s *BlogService) Delete(id uint) error {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	logger.Infow("blog_post_deleted", "id", id, "slug", post.Slug)
	return nil
}

// RecordView counts one view per (post, ip) pair. Returns the flag so the
// handler can tell the client whether the view counted.
func (s *BlogService) RecordView(id uint, ip string) (bool, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return false, err
	}
	if post == nil || !post.IsPublished {
		return false, ErrNotFound
	}
	return s.repo.RecordView(id, ip)
}

func (s *BlogService) checkSlug(slug string, excludeID *uint) error {
	if slug == "" || len(slug) > 200 || !slugPattern.MatchString(slug) {
		return fmt.Errorf("%w: slug", ErrInvalidInput)
	}
	count, err := s.repo.CountBySlug(slug, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugExists
	}
	return nil
}
