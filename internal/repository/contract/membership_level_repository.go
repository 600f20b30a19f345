package contract

import (
	"context"

	"github.com/memberhub/memberhub/internal/models"
)

type MembershipLevelRepository interface {
	Create(ctx context.Context, level *models.MembershipLevel) error
	Update(ctx context.Context, level *models.MembershipLevel) error
	FindByID(ctx context.Context, id uint) (*models.MembershipLevel, error)
	// List returns levels newest first; activeOnly restricts to is_active rows.
	List(ctx context.Context, activeOnly bool) ([]*models.MembershipLevel, error)
}
