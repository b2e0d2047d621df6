package service

import (
	"fmt"
	"strings"

	"github.com/moojpayam/api/internal/logger"
	"github.com/moojpayam/api/internal/models"
	"github.com/moojpayam/api/internal/repository"

	"github.com/shopspring/decimal"
)

// PricingPlanInput carries the fields for a pricing plan write. Prices are
// toman amounts.
type PricingPlanInput struct {
	Name        string
	Description string
	SmsCount    int
	Price       decimal.Decimal
	OldPrice    *decimal.Decimal
	Features    []string
	IsPopular   bool
	IsActive    bool
	SortOrder   int
}

// PricingService manages the pricing plans shown on the landing page.
type PricingService struct {
	repo repository.PricingRepository
}

// NewPricingService creates the pricing service.
func NewPricingService(repo repository.PricingRepository) *PricingService {
	return &PricingService{repo: repo}
}

// ListActive returns active plans for the public site.
func (s *PricingService) ListActive() ([]models.PricingPlan, error) {
	return s.repo.List(true)
}

// ListAll returns every plan for the dashboard.
func (s *PricingService) ListAll() ([]models.PricingPlan, error) {
	return s.repo.List(false)
}

// Create validates and inserts a plan.
func (s *PricingService) Create(input PricingPlanInput) (*models.PricingPlan, error) {
	if err := validatePlan(input); err != nil {
		return nil, err
	}
	plan := &models.PricingPlan{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		SmsCount:    input.SmsCount,
		Price:       models.NewMoneyFromDecimal(input.Price),
		Features:    models.StringList(input.Features),
		IsPopular:   input.IsPopular,
		IsActive:    input.IsActive,
		SortOrder:   input.SortOrder,
	}
	if input.OldPrice != nil {
		old := models.NewMoneyFromDecimal(*input.OldPrice)
		plan.OldPrice = &old
	}
	if err := s.repo.Create(plan); err != nil {
		return nil, err
	}
	logger.Infow("pricing_plan_created", "id", plan.ID, "name", plan.Name)
	return plan, nil
}

// Update replaces a plan's fields.
func (s *PricingService) Update(id uint, input PricingPlanInput) (*models.PricingPlan, error) {
	if err := validatePlan(input); err != nil {
		return nil, err
	}
	plan, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrNotFound
	}

	plan.Name = strings.TrimSpace(input.Name)
	plan.Description = input.Description
	plan.SmsCount = input.SmsCount
	plan.Price = models.NewMoneyFromDecimal(input.Price)
	plan.OldPrice = nil
	if input.OldPrice != nil {
		old := models.NewMoneyFromDecimal(*input.OldPrice)
		plan.OldPrice = &old
	}
	plan.Features = models.StringList(input.Features)
	plan.IsPopular = input.IsPopular
	plan.IsActive = input.IsActive
	plan.SortOrder = input.SortOrder

	if err := s.repo.Update(plan); err != nil {
		return nil, err
	}
	logger.Infow("pricing_plan_updated", "id", plan.ID)
	return plan, nil
}

// Delete removes a plan.
func (s *PricingService) Delete(id uint) error {
	plan, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if plan == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	logger.Infow("pricing_plan_deleted", "id", id)
	return nil
}

func validatePlan(input PricingPlanInput) error {
	switch {
	case strings.TrimSpace(input.Name) == "" || len(input.Name) > 100:
		return fmt.Errorf("%w: name", ErrInvalidInput)
	case input.SmsCount < 0:
		return fmt.Errorf("%w: sms count", ErrInvalidInput)
	case input.Price.IsNegative():
		return fmt.Errorf("%w: price", ErrInvalidInput)
	case input.OldPrice != nil && input.OldPrice.IsNegative():
		return fmt.Errorf("%w: old price", ErrInvalidInput)
	}
	return nil
}
