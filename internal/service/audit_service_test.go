package service

import (
	"strings"
	"testing"
	"time"

	"github.com/moojpayam/api/internal/config"
	"github.com/moojpayam/api/internal/constants"
	"github.com/moojpayam/api/internal/models"
	"github.com/moojpayam/api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestAuditService(t *testing.T) (*AuditService, repository.AuditLogRepository) {
	t.Helper()
	// Each test gets its own named in-memory database so row counts stay
	// isolated.
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.AuditLog{}); err != nil {
		t.Fatalf("auto migrate audit logs failed: %v", err)
	}
	repo := repository.NewAuditLogRepository(db)
	cfg := &config.Config{}
	cfg.Audit.RetentionDays = 3
	cfg.Audit.CriticalRetentionDays = 30
	return NewAuditService(repo, cfg), repo
}

func seedAuditRow(t *testing.T, repo repository.AuditLogRepository, action, severity string, createdAt time.Time) {
	t.Helper()
	err := repo.Create(&models.AuditLog{
		AdminUser: "admin",
		Action:    action,
		Category:  constants.AuditCategoryContent,
		Severity:  severity,
		CreatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("seed audit row failed: %v", err)
	}
}

func TestAuditCleanupRetentionWindows(t *testing.T) {
	svc, repo := newTestAuditService(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	seedAuditRow(t, repo, "recent_info", constants.SeverityInfo, now.AddDate(0, 0, -1))
	seedAuditRow(t, repo, "old_info", constants.SeverityInfo, now.AddDate(0, 0, -5))
	seedAuditRow(t, repo, "old_critical", constants.SeverityCritical, now.AddDate(0, 0, -5))
	seedAuditRow(t, repo, "ancient_critical", constants.SeverityCritical, now.AddDate(0, 0, -40))

	removed, err := svc.Cleanup(now)
	if err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed want 2 got %d", removed)
	}

	logs, total, err := svc.List(repository.AuditLogListFilter{Page: 1, PageSize: 50})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("surviving rows want 2 got %d", total)
	}
	for _, row := range logs {
		if row.Action == "old_info" || row.Action == "ancient_critical" {
			t.Fatalf("row %s should have been purged", row.Action)
		}
	}
}

func TestAuditRecordAndList(t *testing.T) {
	svc, _ := newTestAuditService(t)
	svc.Record("admin", "blog_created", constants.AuditCategoryContent, "", "1.2.3.4", "req-1",
		map[string]interface{}{"blog_id": 7})

	logs, total, err := svc.List(repository.AuditLogListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(logs) != 1 {
		t.Fatalf("want one row got total=%d len=%d", total, len(logs))
	}
	row := logs[0]
	if row.Severity != constants.SeverityInfo {
		t.Fatalf("empty severity must default to info, got %s", row.Severity)
	}
	if row.RequestID != "req-1" || row.IP != "1.2.3.4" {
		t.Fatalf("request metadata not stored: %+v", row)
	}
}

func TestAuditExportCSV(t *testing.T) {
	svc, repo := newTestAuditService(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	seedAuditRow(t, repo, "login_success", constants.SeverityInfo, now)
	seedAuditRow(t, repo, "blog_deleted", constants.SeverityCritical, now)

	data, err := svc.ExportCSV(repository.AuditLogListFilter{})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("csv lines want header + 2 rows, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,created_at,admin_user,action") {
		t.Fatalf("unexpected csv header: %s", lines[0])
	}
}

func TestAuditCountSince(t *testing.T) {
	svc, repo := newTestAuditService(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	seedAuditRow(t, repo, "yesterday", constants.SeverityInfo, now.Add(-23*time.Hour))
	seedAuditRow(t, repo, "last_week", constants.SeverityInfo, now.AddDate(0, 0, -7))

	count, err := svc.CountSince(now.Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("count want 1 got %d", count)
	}
}
