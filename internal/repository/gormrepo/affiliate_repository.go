package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/memberhub/memberhub/internal/models"
	"github.com/memberhub/memberhub/internal/repository/contract"
)

type affiliateRepository struct {
	db *gorm.DB
}

func NewAffiliateRepository(db *gorm.DB) contract.AffiliateRepository {
	return &affiliateRepository{db: db}
}

func (r *affiliateRepository) Create(ctx context.Context, affiliate *models.Affiliate) error {
	return r.db.WithContext(ctx).Create(affiliate).Error
}

func (r *affiliateRepository) Update(ctx context.Context, affiliate *models.Affiliate) error {
	return r.db.WithContext(ctx).Save(affiliate).Error
}

func (r *affiliateRepository) FindByID(ctx context.Context, id uint) (*models.Affiliate, error) {
	var m models.Affiliate
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *affiliateRepository) FindByCode(ctx context.Context, code string) (*models.Affiliate, error) {
	var m models.Affiliate
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *affiliateRepository) List(ctx context.Context) ([]*models.Affiliate, error) {
	var rows []*models.Affiliate
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
