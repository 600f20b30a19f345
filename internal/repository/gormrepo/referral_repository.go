package gormrepo

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/memberhub/memberhub/internal/models"
	"github.com/memberhub/memberhub/internal/repository/contract"
	"github.com/memberhub/memberhub/pkg/types"
)

type referralRepository struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) contract.ReferralRepository {
	return &referralRepository{db: db}
}

func (r *referralRepository) Create(ctx context.Context, referral *models.AffiliateReferral) error {
	return r.db.WithContext(ctx).Create(referral).Error
}

func (r *referralRepository) Update(ctx context.Context, referral *models.AffiliateReferral) error {
	return r.db.WithContext(ctx).Save(referral).Error
}

func (r *referralRepository) FindByID(ctx context.Context, id uint) (*models.AffiliateReferral, error) {
	var m models.AffiliateReferral
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *referralRepository) ListByAffiliate(ctx context.Context, affiliateID uint) ([]*models.AffiliateReferral, error) {
	var rows []*models.AffiliateReferral
	if err := r.db.WithContext(ctx).Where("affiliate_id = ?", affiliateID).Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *referralRepository) SumCommissionByStatus(ctx context.Context, affiliateID uint, status types.ReferralStatus) (decimal.Decimal, error) {
	var out struct{ Total decimal.Decimal }
	err := r.db.WithContext(ctx).Model(&models.AffiliateReferral{}).
		Select("COALESCE(SUM(commission_amount), 0) as total").
		Where("affiliate_id = ? AND status = ?", affiliateID, status).
		Scan(&out).Error
	if err != nil {
		return decimal.Zero, err
	}
	return out.Total, nil
}

func (r *referralRepository) SumCommissionByStatusBetween(ctx context.Context, affiliateID uint, status types.ReferralStatus, from, to time.Time) (decimal.Decimal, error) {
	var out struct{ Total decimal.Decimal }
	err := r.db.WithContext(ctx).Model(&models.AffiliateReferral{}).
		Select("COALESCE(SUM(commission_amount), 0) as total").
		Where("affiliate_id = ? AND status = ? AND created_at >= ? AND created_at < ?", affiliateID, status, from, to).
		Scan(&out).Error
	if err != nil {
		return decimal.Zero, err
	}
	return out.Total, nil
}

func (r *referralRepository) CountByAffiliate(ctx context.Context, affiliateID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AffiliateReferral{}).
		Where("affiliate_id = ?", affiliateID).
		Count(&count).Error
	return count, err
}

func (r *referralRepository) CountWithSubscriptionByAffiliate(ctx context.Context, affiliateID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AffiliateReferral{}).
		Where("affiliate_id = ? AND subscription_id IS NOT NULL", affiliateID).
		Count(&count).Error
	return count, err
}
