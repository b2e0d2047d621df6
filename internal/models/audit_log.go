package models

import "time"

// AuditLog records every sensitive admin action. A daily sweep removes
// non-critical entries after a few days and critical entries after a month.
type AuditLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	AdminUser string    `gorm:"type:varchar(100);index;not null;default:''" json:"admin_user"`
	Action    string    `gorm:"type:varchar(100);index;not null" json:"action"`
	Category  string    `gorm:"type:varchar(50);index;not null;default:''" json:"category"`
	Severity  string    `gorm:"type:varchar(20);index;not null;default:'info'" json:"severity"`
	IP        string    `gorm:"type:varchar(64);not null;default:''" json:"ip"`
	RequestID string    `gorm:"type:varchar(64);not null;default:''" json:"request_id"`
	Details   JSON      `gorm:"type:json" json:"details"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (AuditLog) TableName() string {
	return "audit_logs"
}
