package contract

import (
	"context"

	"github.com/memberhub/memberhub/internal/models"
	"github.com/memberhub/memberhub/pkg/types"
)

type ListSubscriptionsRequest struct {
	Filters   []*types.CommonFilter
	From      int
	Size      int
	SortBy    string
	SortOrder string
}

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *models.Subscription) error
	Update(ctx context.Context, sub *models.Subscription) error
	FindByID(ctx context.Context, id uint) (*models.Subscription, error)
	// FindActiveByUser matches on status alone; an active-status row past its
	// period end still qualifies.
	FindActiveByUser(ctx context.Context, userID uint) (*models.Subscription, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Subscription, error)
	List(ctx context.Context, req *ListSubscriptionsRequest) ([]*models.Subscription, int64, error)
}
