package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/memberhub/memberhub/internal/models"
	"github.com/memberhub/memberhub/internal/repository/contract"
)

type payoutRepository struct {
	db *gorm.DB
}

func NewPayoutRepository(db *gorm.DB) contract.PayoutRepository {
	return &payoutRepository{db: db}
}

func (r *payoutRepository) Create(ctx context.Context, payout *models.AffiliatePayout) error {
	return r.db.WithContext(ctx).Create(payout).Error
}

func (r *payoutRepository) Update(ctx context.Context, payout *models.AffiliatePayout) error {
	return r.db.WithContext(ctx).Save(payout).Error
}

func (r *payoutRepository) FindByID(ctx context.Context, id uint) (*models.AffiliatePayout, error) {
	var m models.AffiliatePayout
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *payoutRepository) List(ctx context.Context, affiliateID *uint) ([]*models.AffiliatePayout, error) {
	q := r.db.WithContext(ctx).Order("created_at desc")
	if affiliateID != nil {
		q = q.Where("affiliate_id = ?", *affiliateID)
	}
	var rows []*models.AffiliatePayout
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
