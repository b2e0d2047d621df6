package repository

import (
	"errors"
	"time"

	"github.com/moojpayam/api/internal/models"

	"gorm.io/gorm"
)

// AnnouncementRepository is the announcement data access interface.
type AnnouncementRepository interface {
	List(onlyActive bool, now time.Time) ([]models.Announcement, error)
	GetByID(id uint) (*models.Announcement, error)
	Create(announcement *models.Announcement) error
	Update(announcement *models.Announcement) error
	Delete(id uint) error
}

// GormAnnouncementRepository is the GORM implementation.
type GormAnnouncementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository creates an announcement repository.
func NewAnnouncementRepository(db *gorm.DB) *GormAnnouncementRepository {
	return &GormAnnouncementRepository{db: db}
}

// List returns announcements, optionally restricted to active ones whose
// schedule window contains now.
func (r *GormAnnouncementRepository) List(onlyActive bool, now time.Time) ([]models.Announcement, error) {
	var items []models.Announcement
	query := r.db.Model(&models.Announcement{})
	if onlyActive {
		query = query.Where("is_active = ?", true).
			Where("starts_at IS NULL OR starts_at <= ?", now).
			Where("ends_at IS NULL OR ends_at >= ?", now)
	}
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID fetches an announcement. Returns nil when missing.
func (r *GormAnnouncementRepository) GetByID(id uint) (*models.Announcement, error) {
	var item models.Announcement
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts an announcement.
func (r *GormAnnouncementRepository) Create(announcement *models.Announcement) error {
	return r.db.Create(announcement).Error
}

// Update saves an announcement.
func (r *GormAnnouncementRepository) Update(announcement *models.Announcement) error {
	return r.db.Save(announcement).Error
}

// Delete soft-deletes an announcement.
func (r *GormAnnouncementRepository) Delete(id uint) error {
	return r.db.Delete(&models.Announcement{}, id).Error
}
