package contract

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/memberhub/memberhub/pkg/types"
)

type MonthlyRevenuePoint struct {
	Month   string          `json:"month"` // YYYY-MM
	Revenue decimal.Decimal `json:"revenue"`
}

type LeaderboardEntry struct {
	AffiliateID   uint            `json:"affiliate_id"`
	Code          string          `json:"code"`
	DisplayName   string          `json:"display_name"`
	TotalEarnings decimal.Decimal `json:"total_earnings"`
}

// AnalyticsRepository serves the read-only rollups. It owns no state of its
// own; every query derives from the entity tables.
type AnalyticsRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountAffiliates(ctx context.Context) (int64, error)
	CountSubscriptions(ctx context.Context) (int64, error)
	CountSubscriptionsByStatus(ctx context.Context, status types.SubscriptionStatus) (int64, error)
	SumSubscriptionAmounts(ctx context.Context) (decimal.Decimal, error)
	// SumSubscriptionAmountsBetween sums over rows created in [from, to).
	SumSubscriptionAmountsBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	SumPayoutAmountsByStatus(ctx context.Context, status types.PayoutStatus) (decimal.Decimal, error)
	// MonthlyRevenue groups subscription amounts by calendar month of
	// creation from `from` onward, chronological.
	MonthlyRevenue(ctx context.Context, from time.Time) ([]*MonthlyRevenuePoint, error)
	// Leaderboard joins active affiliates to their user's display name,
	// ordered by cumulative earnings descending.
	Leaderboard(ctx context.Context, limit int) ([]*LeaderboardEntry, error)
}
