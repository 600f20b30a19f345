package contract

import (
	"context"

	"github.com/memberhub/memberhub/internal/models"
)

type PayoutRepository interface {
	Create(ctx context.Context, payout *models.AffiliatePayout) error
	Update(ctx context.Context, payout *models.AffiliatePayout) error
	FindByID(ctx context.Context, id uint) (*models.AffiliatePayout, error)
	// List returns payouts newest first, optionally restricted to one affiliate.
	List(ctx context.Context, affiliateID *uint) ([]*models.AffiliatePayout, error)
}
