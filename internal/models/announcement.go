package models

import (
	"time"

	"gorm.io/gorm"
)

// Announcement is a site-wide banner message. At most one row is active at a
// time; the public endpoint serves the most recently activated one.
type Announcement struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Title     string         `gorm:"not null" json:"title"`
	Body      string         `gorm:"type:text" json:"body"`
	Link      string         `json:"link"`
	IsActive  bool           `gorm:"default:false;index" json:"is_active"`
	StartsAt  *time.Time     `json:"starts_at"`
	EndsAt    *time.Time     `json:"ends_at"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Announcement) TableName() string {
	return "announcements"
}
