package gormrepo

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/memberhub/memberhub/internal/models"
	"github.com/memberhub/memberhub/internal/repository/contract"
	"github.com/memberhub/memberhub/pkg/types"
)

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) contract.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountAffiliates(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Affiliate{}).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountSubscriptions(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Subscription{}).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountSubscriptionsByStatus(ctx context.Context, status types.SubscriptionStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Subscription{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) SumSubscriptionAmounts(ctx context.Context) (decimal.Decimal, error) {
	var out struct{ Total decimal.Decimal }
	err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Scan(&out).Error
	if err != nil {
		return decimal.Zero, err
	}
	return out.Total, nil
}

func (r *analyticsRepository) SumSubscriptionAmountsBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var out struct{ Total decimal.Decimal }
	err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("created_at >= ? AND created_at < ?", from, to).
		Scan(&out).Error
	if err != nil {
		return decimal.Zero, err
	}
	return out.Total, nil
}

func (r *analyticsRepository) SumPayoutAmountsByStatus(ctx context.Context, status types.PayoutStatus) (decimal.Decimal, error) {
	var out struct{ Total decimal.Decimal }
	err := r.db.WithContext(ctx).Model(&models.AffiliatePayout{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("status = ?", status).
		Scan(&out).Error
	if err != nil {
		return decimal.Zero, err
	}
	return out.Total, nil
}

func (r *analyticsRepository) MonthlyRevenue(ctx context.Context, from time.Time) ([]*contract.MonthlyRevenuePoint, error) {
	var rows []*contract.MonthlyRevenuePoint
	err := r.db.WithContext(ctx).Table((models.Subscription{}).TableName()).
		Select("TO_CHAR(created_at, 'YYYY-MM') as month, COALESCE(SUM(amount), 0) as revenue").
		Where("created_at >= ?", from).
		Group("TO_CHAR(created_at, 'YYYY-MM')").
		Order("month").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *analyticsRepository) Leaderboard(ctx context.Context, limit int) ([]*contract.LeaderboardEntry, error) {
	var rows []*contract.LeaderboardEntry
	err := r.db.WithContext(ctx).Table((models.Affiliate{}).TableName()+" a").
		Select("a.id as affiliate_id, a.code as code, TRIM(CONCAT(u.first_name, ' ', u.last_name)) as display_name, a.total_earnings as total_earnings").
		Joins("JOIN "+(models.User{}).TableName()+" u ON u.id = a.user_id").
		Where("a.is_active = ?", true).
		Order("a.total_earnings desc").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
