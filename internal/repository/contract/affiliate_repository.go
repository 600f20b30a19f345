package contract

import (
	"context"

	"github.com/memberhub/memberhub/internal/models"
)

type AffiliateRepository interface {
	Create(ctx context.Context, affiliate *models.Affiliate) error
	Update(ctx context.Context, affiliate *models.Affiliate) error
	FindByID(ctx context.Context, id uint) (*models.Affiliate, error)
	FindByCode(ctx context.Context, code string) (*models.Affiliate, error)
	List(ctx context.Context) ([]*models.Affiliate, error)
}
