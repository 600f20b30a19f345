package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// MembershipLevel is a priced tier. Price, duration and features are editable
// by administrators; the row identity is immutable.
type MembershipLevel struct {
	ID           uint                         `gorm:"column:id;primaryKey" json:"id"`
	Name         string                       `gorm:"column:name;type:varchar(128);not null" json:"name"`
	Description  string                       `gorm:"column:description;type:text" json:"description"`
	Price        decimal.Decimal              `gorm:"column:price;type:decimal(20,2);not null" json:"price"`
	DurationDays int                          `gorm:"column:duration_days;not null" json:"duration_days"`
	Features     datatypes.JSONSlice[string]  `gorm:"column:features;type:jsonb;default:'[]'" json:"features"`
	IsActive     bool                         `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt    time.Time                    `json:"created_at"`
}

func (MembershipLevel) TableName() string {
	return "membership_levels"
}
