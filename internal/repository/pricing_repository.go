package repository

import (
	"errors"

	"github.com/moojpayam/api/internal/models"

	"gorm.io/gorm"
)

// PricingRepository is the pricing plan data access interface.
type PricingRepository interface {
	List(onlyActive bool) ([]models.PricingPlan, error)
	GetByID(id uint) (*models.PricingPlan, error)
	Create(plan *models.PricingPlan) error
	Update(plan *models.PricingPlan) error
	Delete(id uint) error
}

// GormPricingRepository is the GORM implementation.
type GormPricingRepository struct {
	db *gorm.DB
}

// NewPricingRepository creates a pricing repository.
func NewPricingRepository(db *gorm.DB) *GormPricingRepository {
	return &GormPricingRepository{db: db}
}

// List returns plans ordered for display.
func (r *GormPricingRepository) List(onlyActive bool) ([]models.PricingPlan, error) {
	var plans []models.PricingPlan
	query := r.db.Model(&models.PricingPlan{})
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("sort_order ASC, id ASC").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// GetByID fetches a plan. Returns nil when missing.
func (r *GormPricingRepository) GetByID(id uint) (*models.PricingPlan, error) {
	var plan models.PricingPlan
	if err := r.db.First(&plan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

// Create inserts a plan.
func (r *GormPricingRepository) Create(plan *models.PricingPlan) error {
	return r.db.Create(plan).Error
}

// Update saves a plan.
func (r *GormPricingRepository) Update(plan *models.PricingPlan) error {
	return r.db.Save(plan).Error
}

// Delete soft-deletes a plan.
func (r *GormPricingRepository) Delete(id uint) error {
	return r.db.Delete(&models.PricingPlan{}, id).Error
}
