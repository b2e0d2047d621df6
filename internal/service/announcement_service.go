package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/moojpayam/api/internal/logger"
	"github.com/moojpayam/api/internal/models"
	"github.com/moojpayam/api/internal/repository"
)

// AnnouncementInput carries the fields for an announcement write.
type AnnouncementInput struct {
	Title    string
	Body     string
	Link     string
	IsActive bool
	StartsAt *time.Time
	EndsAt   *time.Time
}

// AnnouncementService manages site announcements.
type AnnouncementService struct {
	repo repository.AnnouncementRepository
}

// NewAnnouncementService creates the announcement service.
func NewAnnouncementService(repo repository.AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{repo: repo}
}

// ListActive returns announcements currently visible to the public site.
func (s *AnnouncementService) ListActive() ([]models.Announcement, error) {
	return s.repo.List(true, time.Now())
}

// ListAll returns every announcement for the dashboard.
func (s *AnnouncementService) ListAll() ([]models.Announcement, error) {
	return s.repo.List(false, time.Now())
}

// Create validates and inserts an announcement.
func (s *AnnouncementService) Create(input AnnouncementInput) (*models.Announcement, error) {
	if err := validateAnnouncement(input); err != nil {
		return nil, err
	}
	item := &models.Announcement{
		Title:    strings.TrimSpace(input.Title),
		Body:     input.Body,
		Link:     strings.TrimSpace(input.Link),
		IsActive: input.IsActive,
		StartsAt: input.StartsAt,
		EndsAt:   input.EndsAt,
	}
	if err := s.repo.Create(item); err != nil {
		return nil, err
	}
	logger.Infow("announcement_created", "id", item.ID, "title", item.Title)
	return item, nil
}

// Update replaces an announcement's fields.
func (s *AnnouncementService) Update(id uint, input AnnouncementInput) (*models.Announcement, error) {
	if err := validateAnnouncement(input); err != nil {
		return nil, err
	}
	item, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}

	item.Title = strings.TrimSpace(input.Title)
	item.Body = input.Body
	item.Link = strings.TrimSpace(input.Link)
	item.IsActive = input.IsActive
	item.StartsAt = input.StartsAt
	item.EndsAt = input.EndsAt

	if err := s.repo.Update(item); err != nil {
		return nil, err
	}
	logger.Infow("announcement_updated", "id", item.ID)
	return item, nil
}

// Delete removes an announcement.
func (s *AnnouncementService) Delete(id uint) error {
	item, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	logger.Infow("announcement_deleted", "id", id)
	return nil
}

func validateAnnouncement(input AnnouncementInput) error {
	switch {
	case strings.TrimSpace(input.Title) == "" || len(input.Title) > 200:
		return fmt.Errorf("%w: title", ErrInvalidInput)
	case strings.TrimSpace(input.Body) == "":
		return fmt.Errorf("%w: body", ErrInvalidInput)
	case input.StartsAt != nil && input.EndsAt != nil && input.EndsAt.Before(*input.StartsAt):
		return fmt.Errorf("%w: schedule window", ErrInvalidInput)
	}
	return nil
}
