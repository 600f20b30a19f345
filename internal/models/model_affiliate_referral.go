package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/memberhub/memberhub/pkg/types"
)

// AffiliateReferral attributes a referred user's purchase to an affiliate.
type AffiliateReferral struct {
	ID               uint                 `gorm:"column:id;primaryKey" json:"id"`
	AffiliateID      uint                 `gorm:"column:affiliate_id;not null;index" json:"affiliate_id"`
	ReferredUserID   uint                 `gorm:"column:referred_user_id;not null;index" json:"referred_user_id"`
	SubscriptionID   *uint                `gorm:"column:subscription_id;index" json:"subscription_id,omitempty"`
	CommissionAmount decimal.Decimal      `gorm:"column:commission_amount;type:decimal(20,2);not null" json:"commission_amount"`
	Status           types.ReferralStatus `gorm:"column:status;type:varchar(32);not null;index" json:"status"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

func (AffiliateReferral) TableName() string {
	return "affiliate_referrals"
}
