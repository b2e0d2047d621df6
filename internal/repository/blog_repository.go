package repository

import (
	"errors"
	"strings"

	"github.com/moojpayam/api/internal/models"

	"gorm.io/gorm"
)

// BlogRepository is the blog post data access interface.
type BlogRepository interface {
	List(filter BlogListFilter) ([]models.BlogPost, int64, error)
	GetByID(id uint) (*models.BlogPost, error)
	GetBySlug(slug string, onlyPublished bool) (*models.BlogPost, error)
	Create(post *models.BlogPost) error
	Update(post *models.BlogPost) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
	// RecordView inserts the dedup row and bumps the counter atomically at
	// the database level. Returns false when this (blog, ip) pair already
	// counted a view.
	RecordView(blogID uint, ip string) (bool, error)
}

// GormBlogRepository is the GORM implementation.
type GormBlogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a blog repository.
func NewBlogRepository(db *gorm.DB) *GormBlogRepository {
	return &GormBlogRepository{db: db}
}

// List returns posts matching the filter plus the total count.
func (r *GormBlogRepository) List(filter BlogListFilter) ([]models.BlogPost, int64, error) {
	var posts []models.BlogPost
	query := r.db.Model(&models.BlogPost{})

	if filter.OnlyPublished {
		query = query.Where("is_published = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("slug LIKE ? OR title LIKE ? OR summary LIKE ?", like, like, like)
	}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		query = query.Where("tags LIKE ?", "%\""+tag+"\"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "created_at DESC"
	}
	if err := query.Order(orderBy).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetByID fetches a post by primary key. Returns nil when missing.
func (r *GormBlogRepository) GetByID(id uint) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetBySlug fetches a post by slug. Returns nil when missing.
func (r *GormBlogRepository) GetBySlug(slug string, onlyPublished bool) (*models.BlogPost, error) {
	query := r.db.Where("slug = ?", slug)
	if onlyPublished {
		query = query.Where("is_published = ?", true)
	}

	var post models.BlogPost
	if err := query.First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Create inserts a post.
func (r *GormBlogRepository) Create(post *models.BlogPost) error {
	return r.db.Create(post).Error
}

// Update saves a post.
func (r *GormBlogRepository) Update(post *models.BlogPost) error {
	return r.db.Save(post).Error
}

// Delete soft-deletes a post.
func (r *GormBlogRepository) Delete(id uint) error {
	return r.db.Delete(&models.BlogPost{}, id).Error
}

// CountBySlug counts posts using slug, optionally excluding one id.
func (r *GormBlogRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.BlogPost{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// RecordView inserts the (blog, ip) dedup row and increments the counter
// with a single UPDATE, so concurrent views never lose increments.
func (r *GormBlogRepository) RecordView(blogID uint, ip string) (bool, error) {
	counted := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		view := models.BlogView{BlogID: blogID, IP: ip}
		result := tx.Where(models.BlogView{BlogID: blogID, IP: ip}).FirstOrCreate(&view)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil // already viewed from this ip
		}
		counted = true
		return tx.Model(&models.BlogPost{}).
			Where("id = ?", blogID).
			UpdateColumn("views", gorm.Expr("views + 1")).Error
	})
	return counted, err
}
