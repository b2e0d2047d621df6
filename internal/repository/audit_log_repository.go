package repository

import (
	"strings"
	"time"

	"github.com/moojpayam/api/internal/models"

	"gorm.io/gorm"
)

// AuditLogRepository is the audit log data access interface.
type AuditLogRepository interface {
	Create(log *models.AuditLog) error
	List(filter AuditLogListFilter) ([]models.AuditLog, int64, error)
	// DeleteOlderThan removes rows created before cutoff, optionally keeping
	// a severity out of the purge. Returns the number of rows removed.
	DeleteOlderThan(cutoff time.Time, keepSeverity string) (int64, error)
	CountSince(since time.Time) (int64, error)
}

// GormAuditLogRepository is the GORM implementation.
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates an audit log repository.
func NewAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Create inserts a log row.
func (r *GormAuditLogRepository) Create(log *models.AuditLog) error {
	return r.db.Create(log).Error
}

// List returns log rows matching the filter, newest first, plus the total.
func (r *GormAuditLogRepository) List(filter AuditLogListFilter) ([]models.AuditLog, int64, error) {
	var logs []models.AuditLog
	query := r.db.Model(&models.AuditLog{})

	if user := strings.TrimSpace(filter.AdminUser); user != "" {
		query = query.Where("admin_user = ?", user)
	}
	if action := strings.TrimSpace(filter.Action); action != "" {
		query = query.Where("action = ?", action)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if severity := strings.TrimSpace(filter.Severity); severity != "" {
		query = query.Where("severity = ?", severity)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// DeleteOlderThan purges aged rows below the kept severity.
func (r *GormAuditLogRepository) DeleteOlderThan(cutoff time.Time, keepSeverity string) (int64, error) {
	query := r.db.Where("created_at < ?", cutoff)
	if keepSeverity != "" {
		query = query.Where("severity != ?", keepSeverity)
	}
	result := query.Delete(&models.AuditLog{})
	return result.RowsAffected, result.Error
}

// CountSince counts rows created at or after since.
func (r *GormAuditLogRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.AuditLog{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}
