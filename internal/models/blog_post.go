package models

import (
	"time"

	"gorm.io/gorm"
)

// BlogPost is one article on the marketing site.
type BlogPost struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string         `gorm:"not null" json:"title"`
	Summary     string         `gorm:"type:text" json:"summary"`
	Content     string         `gorm:"type:text" json:"content"`
	Author      string         `json:"author"`
	Thumbnail   string         `json:"thumbnail"`
	Tags        StringList     `gorm:"type:json" json:"tags"`
	SeoMeta     JSON           `gorm:"type:json" json:"seo_meta"`
	Views       int64          `gorm:"default:0" json:"views"`
	IsPublished bool           `gorm:"default:false;index" json:"is_published"`
	PublishedAt *time.Time     `gorm:"index" json:"published_at"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (BlogPost) TableName() string {
	return "blog_posts"
}

// BlogView deduplicates view tracking per (post, ip).
type BlogView struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	BlogID    uint      `gorm:"not null;uniqueIndex:idx_blog_views_blog_ip" json:"blog_id"`
	IP        string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_blog_views_blog_ip" json:"ip"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (BlogView) TableName() string {
	return "blog_views"
}
