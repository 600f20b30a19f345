package contract

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/memberhub/memberhub/internal/models"
	"github.com/memberhub/memberhub/pkg/types"
)

type ReferralRepository interface {
	Create(ctx context.Context, referral *models.AffiliateReferral) error
	Update(ctx context.Context, referral *models.AffiliateReferral) error
	FindByID(ctx context.Context, id uint) (*models.AffiliateReferral, error)
	ListByAffiliate(ctx context.Context, affiliateID uint) ([]*models.AffiliateReferral, error)
	// SumCommissionByStatus returns zero for an affiliate with no matching
	// rows, including an affiliate id that does not exist.
	SumCommissionByStatus(ctx context.Context, affiliateID uint, status types.ReferralStatus) (decimal.Decimal, error)
	// SumCommissionByStatusBetween restricts the sum to rows created in
	// [from, to).
	SumCommissionByStatusBetween(ctx context.Context, affiliateID uint, status types.ReferralStatus, from, to time.Time) (decimal.Decimal, error)
	CountByAffiliate(ctx context.Context, affiliateID uint) (int64, error)
	CountWithSubscriptionByAffiliate(ctx context.Context, affiliateID uint) (int64, error)
}
