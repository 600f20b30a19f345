package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/memberhub/memberhub/internal/repository/contract"
	"github.com/memberhub/memberhub/pkg/apperr"
	"github.com/memberhub/memberhub/pkg/types"
)

// Service serves the admin rollups. Everything is computed on read; no
// counters are maintained outside the affiliate's own totals.
type Service struct {
	analytics  contract.AnalyticsRepository
	affiliates contract.AffiliateRepository
	referrals  contract.ReferralRepository
	log        *zap.SugaredLogger
	now        func() time.Time
}

func NewService(
	analytics contract.AnalyticsRepository,
	affiliates contract.AffiliateRepository,
	referrals contract.ReferralRepository,
	log *zap.SugaredLogger,
) *Service {
	return &Service{
		analytics:  analytics,
		affiliates: affiliates,
		referrals:  referrals,
		log:        log,
		now:        time.Now,
	}
}

type Dashboard struct {
	TotalUsers          int64           `json:"total_users"`
	TotalAffiliates     int64           `json:"total_affiliates"`
	TotalSubscriptions  int64           `json:"total_subscriptions"`
	ActiveSubscriptions int64           `json:"active_subscriptions"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	MonthlyRevenue      decimal.Decimal `json:"monthly_revenue"`
	PendingPayouts      decimal.Decimal `json:"pending_payouts"`
}

// monthWindow returns [first of current month, first of next month) in UTC.
func (s *Service) monthWindow() (time.Time, time.Time) {
	now := s.now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// GetDashboard aggregates the platform-wide numbers. Revenue counts every
// subscription ever created regardless of its current status; a cancelled
// subscription was still sold.
func (s *Service) GetDashboard(ctx context.Context) (*Dashboard, error) {
	users, err := s.analytics.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	affiliates, err := s.analytics.CountAffiliates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count affiliates: %w", err)
	}
	subs, err := s.analytics.CountSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count subscriptions: %w", err)
	}
	activeSubs, err := s.analytics.CountSubscriptionsByStatus(ctx, types.SubscriptionStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to count active subscriptions: %w", err)
	}
	revenue, err := s.analytics.SumSubscriptionAmounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	from, to := s.monthWindow()
	monthly, err := s.analytics.SumSubscriptionAmountsBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum monthly revenue: %w", err)
	}
	pendingPayouts, err := s.analytics.SumPayoutAmountsByStatus(ctx, types.PayoutStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to sum pending payouts: %w", err)
	}
	return &Dashboard{
		TotalUsers:          users,
		TotalAffiliates:     affiliates,
		TotalSubscriptions:  subs,
		ActiveSubscriptions: activeSubs,
		TotalRevenue:        revenue,
		MonthlyRevenue:      monthly,
		PendingPayouts:      pendingPayouts,
	}, nil
}

type AffiliateStats struct {
	AffiliateID     uint            `json:"affiliate_id"`
	Code            string          `json:"code"`
	TotalEarnings   decimal.Decimal `json:"total_earnings"`
	PendingEarnings decimal.Decimal `json:"pending_earnings"`
	MonthlyEarnings decimal.Decimal `json:"monthly_earnings"`
	TotalReferrals  int64           `json:"total_referrals"`
	ConvertedCount  int64           `json:"converted_count"`
	ConversionRate  decimal.Decimal `json:"conversion_rate"`
	Clicks          int64           `json:"clicks"`
}

// GetAffiliateStats reports one affiliate's performance. TotalEarnings is the
// stored cumulative figure, not a recomputation, so a manual row edit shows
// through. Clicks is always zero; click tracking never made it past the
// schema.
func (s *Service) GetAffiliateStats(ctx context.Context, affiliateID uint) (*AffiliateStats, error) {
	affiliate, err := s.affiliates.FindByID(ctx, affiliateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load affiliate: %w", err)
	}
	if affiliate == nil {
		return nil, apperr.NotFound("affiliate")
	}

	pending, err := s.referrals.SumCommissionByStatus(ctx, affiliateID, types.ReferralStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to sum pending commissions: %w", err)
	}
	from, to := s.monthWindow()
	monthly, err := s.referrals.SumCommissionByStatusBetween(ctx, affiliateID, types.ReferralStatusApproved, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum monthly commissions: %w", err)
	}
	total, err := s.referrals.CountByAffiliate(ctx, affiliateID)
	if err != nil {
		return nil, fmt.Errorf("failed to count referrals: %w", err)
	}
	converted, err := s.referrals.CountWithSubscriptionByAffiliate(ctx, affiliateID)
	if err != nil {
		return nil, fmt.Errorf("failed to count converted referrals: %w", err)
	}

	rate := decimal.Zero
	if total > 0 {
		rate = decimal.NewFromInt(converted).
			Div(decimal.NewFromInt(total)).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	return &AffiliateStats{
		AffiliateID:     affiliate.ID,
		Code:            affiliate.Code,
		TotalEarnings:   affiliate.TotalEarnings,
		PendingEarnings: pending,
		MonthlyEarnings: monthly,
		TotalReferrals:  total,
		ConvertedCount:  converted,
		ConversionRate:  rate,
		Clicks:          0,
	}, nil
}

// MonthlyRevenue returns per-month revenue for the trailing `months` calendar
// months, current month included, oldest first. Months with no subscriptions
// are absent from the result rather than zero-filled.
func (s *Service) MonthlyRevenue(ctx context.Context, months int) ([]*contract.MonthlyRevenuePoint, error) {
	if months <= 0 {
		months = 12
	}
	now := s.now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	points, err := s.analytics.MonthlyRevenue(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly revenue: %w", err)
	}
	return points, nil
}

// Leaderboard ranks active affiliates by cumulative earnings.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]*contract.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	entries, err := s.analytics.Leaderboard(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to compute leaderboard: %w", err)
	}
	return entries, nil
}
