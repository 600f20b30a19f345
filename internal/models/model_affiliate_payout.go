package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/memberhub/memberhub/pkg/types"
)

// AffiliatePayout is a disbursement request of accrued commission.
// ProcessedAt is set when the payout leaves pending and is never unset.
type AffiliatePayout struct {
	ID          uint               `gorm:"column:id;primaryKey" json:"id"`
	AffiliateID uint               `gorm:"column:affiliate_id;not null;index" json:"affiliate_id"`
	Amount      decimal.Decimal    `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	Status      types.PayoutStatus `gorm:"column:status;type:varchar(32);not null;index" json:"status"`
	Method      string             `gorm:"column:method;type:varchar(64);not null" json:"method"`
	Details     *string            `gorm:"column:details;type:text" json:"details,omitempty"`
	ProcessedAt *time.Time         `gorm:"column:processed_at" json:"processed_at,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

func (AffiliatePayout) TableName() string {
	return "affiliate_payouts"
}
