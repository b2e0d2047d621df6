package models

import "time"

// ShortLink maps a category-namespaced slug to a destination URL.
// NormalizedURL is the destination with query and fragment stripped; it is
// the dedup key, so shortening the same page twice yields the same slug.
type ShortLink struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	ShortCode     string    `gorm:"uniqueIndex;not null" json:"short_code"`
	LongURL       string    `gorm:"type:text;not null" json:"long_url"`
	NormalizedURL string    `gorm:"uniqueIndex;not null" json:"-"`
	Category      string    `gorm:"type:varchar(32);index;not null" json:"category"`
	Hits          int64     `gorm:"default:0" json:"hits"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (ShortLink) TableName() string {
	return "short_links"
}
