package repository

import "time"

// BlogListFilter narrows blog post listings.
type BlogListFilter struct {
	Page          int
	PageSize      int
	Search        string
	Tag           string
	OnlyPublished bool
	OrderBy       string
}

// AuditLogListFilter narrows audit log listings.
type AuditLogListFilter struct {
	Page        int
	PageSize    int
	AdminUser   string
	Action      string
	Category    string
	Severity    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
