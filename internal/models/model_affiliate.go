package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Affiliate is a user enrolled in the referral program. Code is generated at
// creation from the user id and creation instant, so it is unique by
// construction rather than by retry-on-collision.
type Affiliate struct {
	ID             uint            `gorm:"column:id;primaryKey" json:"id"`
	UserID         uint            `gorm:"column:user_id;not null;index" json:"user_id"`
	Code           string          `gorm:"column:code;type:varchar(32);not null;uniqueIndex" json:"code"`
	CommissionRate decimal.Decimal `gorm:"column:commission_rate;type:decimal(5,4);not null" json:"commission_rate"`
	TotalEarnings  decimal.Decimal `gorm:"column:total_earnings;type:decimal(20,2);not null;default:0" json:"total_earnings"`
	TotalReferrals int64           `gorm:"column:total_referrals;not null;default:0" json:"total_referrals"`
	IsActive       bool            `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (Affiliate) TableName() string {
	return "affiliates"
}
