package repository

import (
	"errors"

	"github.com/moojpayam/api/internal/models"

	"gorm.io/gorm"
)

// ShortLinkRepository is the short link data access interface.
type ShortLinkRepository interface {
	GetByCode(code string) (*models.ShortLink, error)
	GetByNormalizedURL(normalized string) (*models.ShortLink, error)
	Create(link *models.ShortLink) error
	List(page, pageSize int) ([]models.ShortLink, int64, error)
	// IncrementHits bumps the hit counter at the database level.
	IncrementHits(code string) error
	Delete(id uint) error
}

// GormShortLinkRepository is the GORM implementation.
type GormShortLinkRepository struct {
	db *gorm.DB
}

// NewShortLinkRepository creates a short link repository.
func NewShortLinkRepository(db *gorm.DB) *GormShortLinkRepository {
	return &GormShortLinkRepository{db: db}
}

// GetByCode fetches a link by short code. Returns nil when missing.
func (r *GormShortLinkRepository) GetByCode(code string) (*models.ShortLink, error) {
	var link models.ShortLink
	if err := r.db.Where("short_code = ?", code).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

// GetByNormalizedURL fetches the existing link for a normalized URL, if any.
func (r *GormShortLinkRepository) GetByNormalizedURL(normalized string) (*models.ShortLink, error) {
	var link models.ShortLink
	if err := r.db.Where("normalized_url = ?", normalized).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

// Create inserts a link. Unique indexes on short_code and normalized_url
// surface races as errors for the caller to retry.
func (r *GormShortLinkRepository) Create(link *models.ShortLink) error {
	return r.db.Create(link).Error
}

// List returns links newest first plus the total count.
func (r *GormShortLinkRepository) List(page, pageSize int) ([]models.ShortLink, int64, error) {
	var links []models.ShortLink
	query := r.db.Model(&models.ShortLink{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, page, pageSize)
	if err := query.Order("created_at DESC").Find(&links).Error; err != nil {
		return nil, 0, err
	}
	return links, total, nil
}

// IncrementHits bumps the hit counter with a single UPDATE.
func (r *GormShortLinkRepository) IncrementHits(code string) error {
	return r.db.Model(&models.ShortLink{}).
		Where("short_code = ?", code).
		UpdateColumn("hits", gorm.Expr("hits + 1")).Error
}

// Delete removes a link.
func (r *GormShortLinkRepository) Delete(id uint) error {
	return r.db.Delete(&models.ShortLink{}, id).Error
}
