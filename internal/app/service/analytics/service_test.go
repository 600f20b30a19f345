package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/memberhub/memberhub/internal/models"
	"github.com/memberhub/memberhub/internal/repository/repotest"
	"github.com/memberhub/memberhub/pkg/apperr"
	"github.com/memberhub/memberhub/pkg/types"
)

func newTestService(t *testing.T) (*Service, *repotest.Store) {
	t.Helper()
	store := repotest.NewStore()
	svc := NewService(store.Analytics(), store.Affiliates(), store.Referrals(), zap.NewNop().Sugar())
	return svc, store
}

func seedUser(t *testing.T, store *repotest.Store, email, first, last string) *models.User {
	t.Helper()
	u := &models.User{Email: email, FirstName: first, LastName: last, IsActive: true}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestGetDashboard_Aggregates(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	now := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	u1 := seedUser(t, store, "a@example.com", "A", "One")
	u2 := seedUser(t, store, "b@example.com", "B", "Two")

	require.NoError(t, store.Affiliates().Create(ctx, &models.Affiliate{UserID: u1.ID, Code: "AFF1", IsActive: true}))

	// One subscription last month, two this month, one of them cancelled.
	require.NoError(t, store.Subscriptions().Create(ctx, &models.Subscription{
		UserID: u1.ID, MembershipLevelID: 1, Status: types.SubscriptionStatusActive,
		Amount: dec("10.00"), Currency: "USD", CreatedAt: now.AddDate(0, -1, 0),
	}))
	require.NoError(t, store.Subscriptions().Create(ctx, &models.Subscription{
		UserID: u1.ID, MembershipLevelID: 1, Status: types.SubscriptionStatusActive,
		Amount: dec("20.00"), Currency: "USD", CreatedAt: now,
	}))
	require.NoError(t, store.Subscriptions().Create(ctx, &models.Subscription{
		UserID: u2.ID, MembershipLevelID: 1, Status: types.SubscriptionStatusCancelled,
		Amount: dec("30.00"), Currency: "USD", CreatedAt: now,
	}))

	require.NoError(t, store.Payouts().Create(ctx, &models.AffiliatePayout{
		AffiliateID: 1, Amount: dec("7.50"), Status: types.PayoutStatusPending, Method: "paypal",
	}))
	require.NoError(t, store.Payouts().Create(ctx, &models.AffiliatePayout{
		AffiliateID: 1, Amount: dec("2.00"), Status: types.PayoutStatusCompleted, Method: "paypal",
	}))

	d, err := svc.GetDashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), d.TotalUsers)
	require.Equal(t, int64(1), d.TotalAffiliates)
	require.Equal(t, int64(3), d.TotalSubscriptions)
	require.Equal(t, int64(2), d.ActiveSubscriptions)
	// Cancelled subscriptions still count toward revenue.
	require.Equal(t, "60.00", d.TotalRevenue.StringFixed(2))
	require.Equal(t, "50.00", d.MonthlyRevenue.StringFixed(2))
	require.Equal(t, "7.50", d.PendingPayouts.StringFixed(2))
}

func TestGetAffiliateStats_ConversionRateRounded(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	now := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	store.Now = func() time.Time { return now }

	partner := seedUser(t, store, "p@example.com", "Pat", "Partner")
	a := &models.Affiliate{UserID: partner.ID, Code: "AFF77", TotalEarnings: dec("123.45"), IsActive: true}
	require.NoError(t, store.Affiliates().Create(ctx, a))

	subID := uint(500)
	// 1 of 3 referrals converted to a subscription.
	require.NoError(t, store.Referrals().Create(ctx, &models.AffiliateReferral{
		AffiliateID: a.ID, ReferredUserID: 1, SubscriptionID: &subID,
		CommissionAmount: dec("10.00"), Status: types.ReferralStatusApproved,
	}))
	require.NoError(t, store.Referrals().Create(ctx, &models.AffiliateReferral{
		AffiliateID: a.ID, ReferredUserID: 2, CommissionAmount: dec("4.00"), Status: types.ReferralStatusPending,
	}))
	require.NoError(t, store.Referrals().Create(ctx, &models.AffiliateReferral{
		AffiliateID: a.ID, ReferredUserID: 3, CommissionAmount: dec("6.00"), Status: types.ReferralStatusPending,
	}))

	stats, err := svc.GetAffiliateStats(ctx, a.ID)
	require.NoError(t, err)
	// Stored cumulative figure, not recomputed from referrals.
	require.Equal(t, "123.45", stats.TotalEarnings.StringFixed(2))
	require.Equal(t, "10.00", stats.PendingEarnings.StringFixed(2))
	require.Equal(t, "10.00", stats.MonthlyEarnings.StringFixed(2))
	require.Equal(t, int64(3), stats.TotalReferrals)
	require.Equal(t, int64(1), stats.ConvertedCount)
	require.Equal(t, "33.33", stats.ConversionRate.StringFixed(2))
	require.Zero(t, stats.Clicks)
}

func TestGetAffiliateStats_NoReferrals(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	partner := seedUser(t, store, "p@example.com", "", "")
	a := &models.Affiliate{UserID: partner.ID, Code: "AFF9", IsActive: true}
	require.NoError(t, store.Affiliates().Create(ctx, a))

	stats, err := svc.GetAffiliateStats(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, stats.ConversionRate.IsZero())

	_, err = svc.GetAffiliateStats(ctx, 999)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestLeaderboard_OrderAndLimit(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	u1 := seedUser(t, store, "first@example.com", "First", "Place")
	u2 := seedUser(t, store, "second@example.com", "Second", "Place")
	u3 := seedUser(t, store, "hidden@example.com", "In", "Active")

	require.NoError(t, store.Affiliates().Create(ctx, &models.Affiliate{UserID: u1.ID, Code: "AFF1", TotalEarnings: dec("300.00"), IsActive: true}))
	require.NoError(t, store.Affiliates().Create(ctx, &models.Affiliate{UserID: u2.ID, Code: "AFF2", TotalEarnings: dec("100.00"), IsActive: true}))
	require.NoError(t, store.Affiliates().Create(ctx, &models.Affiliate{UserID: u3.ID, Code: "AFF3", TotalEarnings: dec("900.00"), IsActive: false}))

	entries, err := svc.Leaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "First Place", entries[0].DisplayName)

	top, err := svc.Leaderboard(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	require.Equal(t, "AFF1", top[0].Code)
}

func TestMonthlyRevenue_TrailingWindow(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	now := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	mk := func(amount string, at time.Time) {
		require.NoError(t, store.Subscriptions().Create(ctx, &models.Subscription{
			UserID: 1, MembershipLevelID: 1, Status: types.SubscriptionStatusActive,
			Amount: dec(amount), Currency: "USD", CreatedAt: at,
		}))
	}
	mk("10.00", now)                   // 2026-05
	mk("20.00", now.AddDate(0, -1, 0)) // 2026-04
	mk("40.00", now.AddDate(0, -4, 0)) // 2026-01, outside a 3-month window

	points, err := svc.MonthlyRevenue(ctx, 3)
	require.NoError(t, err)
	require.Len(t, points, 2)
	require.Equal(t, "2026-04", points[0].Month)
	require.Equal(t, "20.00", points[0].Revenue.StringFixed(2))
	require.Equal(t, "2026-05", points[1].Month)
	require.Equal(t, "10.00", points[1].Revenue.StringFixed(2))
}
