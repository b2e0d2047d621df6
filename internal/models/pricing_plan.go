package models

import (
	"time"

	"gorm.io/gorm"
)

// PricingPlan is one SMS bundle offered on the pricing page.
type PricingPlan struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	SmsCount    int            `gorm:"not null" json:"sms_count"`
	Price       Money          `gorm:"type:decimal(18,0);not null" json:"price"`
	OldPrice    *Money         `gorm:"type:decimal(18,0)" json:"old_price,omitempty"`
	Features    StringList     `gorm:"type:json" json:"features"`
	IsPopular   bool           `gorm:"default:false" json:"is_popular"`
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (PricingPlan) TableName() string {
	return "pricing_plans"
}
