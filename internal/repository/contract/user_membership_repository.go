package contract

import (
	"context"
	"time"

	"github.com/memberhub/memberhub/internal/models"
)

type UserMembershipRepository interface {
	Create(ctx context.Context, membership *models.UserMembership) error
	Update(ctx context.Context, membership *models.UserMembership) error
	FindByID(ctx context.Context, id uint) (*models.UserMembership, error)
	// FindActiveByUser returns memberships with is_active set whose
	// [start_date, end_date] window contains at, ordered by start_date
	// descending then id descending.
	FindActiveByUser(ctx context.Context, userID uint, at time.Time) ([]*models.UserMembership, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.UserMembership, error)
}
