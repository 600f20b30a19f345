package contract

import (
	"context"

	"github.com/memberhub/memberhub/internal/models"
)

type ContentRepository interface {
	Create(ctx context.Context, content *models.Content) error
	Update(ctx context.Context, content *models.Content) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Content, error)
	// ListVisible returns published rows that are free or require exactly
	// activeLevelID (pass nil for free-only), most recently created first.
	ListVisible(ctx context.Context, activeLevelID *uint) ([]*models.Content, error)
	ListAll(ctx context.Context) ([]*models.Content, error)
}
