package contract

import (
	"context"

	"github.com/memberhub/memberhub/internal/models"
)

// Finders return (nil, nil) when no row matches; callers translate that into
// their own not-found error.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}
