package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"time"

	"github.com/moojpayam/api/internal/config"
	"github.com/moojpayam/api/internal/constants"
	"github.com/moojpayam/api/internal/logger"
	"github.com/moojpayam/api/internal/models"
	"github.com/moojpayam/api/internal/repository"
)

// AuditService records dashboard actions and enforces retention. Regular
// rows live a few days; critical rows survive a longer window.
type AuditService struct {
	repo                  repository.AuditLogRepository
	retentionDays         int
	criticalRetentionDays int
}

// NewAuditService creates the audit service.
func NewAuditService(repo repository.AuditLogRepository, cfg *config.Config) *AuditService {
	retention := cfg.Audit.RetentionDays
	if retention <= 0 {
		retention = 3
	}
	critical := cfg.Audit.CriticalRetentionDays
	if critical < retention {
		critical = 30
	}
	return &AuditService{
		repo:                  repo,
		retentionDays:         retention,
		criticalRetentionDays: critical,
	}
}

// Record writes one audit row. Failures log and swallow so auditing never
// breaks the action it describes.
func (s *AuditService) Record(adminUser, action, category, severity, ip, requestID string, details map[string]interface{}) {
	if severity == "" {
		severity = constants.SeverityInfo
	}
	entry := &models.AuditLog{
		AdminUser: adminUser,
		Action:    action,
		Category:  category,
		Severity:  severity,
		IP:        ip,
		RequestID: requestID,
		Details:   models.JSON(details),
	}
	if err := s.repo.Create(entry); err != nil {
		logger.Errorw("audit_log_write_failed", "action", action, "error", err)
	}
}

// List returns audit rows matching the filter.
func (s *AuditService) List(filter repository.AuditLogListFilter) ([]models.AuditLog, int64, error) {
	if filter.PageSize <= 0 || filter.PageSize > 200 {
		filter.PageSize = 50
	}
	return s.repo.List(filter)
}

// ExportCSV renders matching rows as a CSV document for download.
func (s *AuditService) ExportCSV(filter repository.AuditLogListFilter) ([]byte, error) {
	filter.Page = 1
	filter.PageSize = 10000
	logs, _, err := s.repo.List(filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	header := []string{"id", "created_at", "admin_user", "action", "category", "severity", "ip", "request_id", "details"}
	if err := writer.Write(header); err != nil {
		return nil, err
	}
	for _, row := range logs {
		details := ""
		if len(row.Details) > 0 {
			if raw, err := json.Marshal(row.Details); err == nil {
				details = string(raw)
			}
		}
		record := []string{
			strconv.FormatUint(uint64(row.ID), 10),
			row.CreatedAt.Format(time.RFC3339),
			row.AdminUser,
			row.Action,
			row.Category,
			row.Severity,
			row.IP,
			row.RequestID,
			details,
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Cleanup purges rows past retention. Critical rows get the longer window.
func (s *AuditService) Cleanup(now time.Time) (int64, error) {
	regularCutoff := now.AddDate(0, 0, -s.retentionDays)
	criticalCutoff := now.AddDate(0, 0, -s.criticalRetentionDays)

	removed, err := s.repo.DeleteOlderThan(regularCutoff, constants.SeverityCritical)
	if err != nil {
		return removed, err
	}
	criticalRemoved, err := s.repo.DeleteOlderThan(criticalCutoff, "")
	if err != nil {
		return removed + criticalRemoved, err
	}
	total := removed + criticalRemoved
	if total > 0 {
		logger.Infow("audit_logs_purged",
			"removed", total,
			"retention_days", s.retentionDays,
			"critical_retention_days", s.criticalRetentionDays,
		)
	}
	return total, nil
}

// CountSince reports recent audit activity for the stats endpoint.
func (s *AuditService) CountSince(since time.Time) (int64, error) {
	return s.repo.CountSince(since)
}
