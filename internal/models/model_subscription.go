package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/memberhub/memberhub/pkg/types"
)

// Subscription is a billing record for a user on a membership level.
type Subscription struct {
	ID                     uint                     `gorm:"column:id;primaryKey" json:"id"`
	UserID                 uint                     `gorm:"column:user_id;not null;index" json:"user_id"`
	MembershipLevelID      uint                     `gorm:"column:membership_level_id;not null" json:"membership_level_id"`
	ProviderSubscriptionID *string                  `gorm:"column:provider_subscription_id;type:varchar(128)" json:"provider_subscription_id,omitempty"`
	Status                 types.SubscriptionStatus `gorm:"column:status;type:varchar(32);not null;index" json:"status"`
	CurrentPeriodStart     time.Time                `gorm:"column:current_period_start;not null" json:"current_period_start"`
	CurrentPeriodEnd       time.Time                `gorm:"column:current_period_end;not null" json:"current_period_end"`
	Amount                 decimal.Decimal          `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	Currency               string                   `gorm:"column:currency;type:varchar(8);not null" json:"currency"`
	AffiliateID            *uint                    `gorm:"column:affiliate_id;index" json:"affiliate_id,omitempty"`
	CreatedAt              time.Time                `json:"created_at"`
	UpdatedAt              time.Time                `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// Active checks status only. The billing period is deliberately not consulted
// here; see Service.GetActive for the rationale.
func (s *Subscription) Active() bool {
	return s != nil && s.Status == types.SubscriptionStatusActive
}
