package affiliate

import (
	"context"
	"regexp"
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
	svc := NewService(store.Affiliates(), store.Referrals(), store.Payouts(), store.Users(), store.Subscriptions(), zap.NewNop().Sugar())
	return svc, store
}

func seedUser(t *testing.T, store *repotest.Store, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, IsActive: true}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u
}

func enroll(t *testing.T, svc *Service, userID uint, rate string) *models.Affiliate {
	t.Helper()
	a, err := svc.CreateAffiliate(context.Background(), &CreateAffiliateRequest{
		UserID: userID, CommissionRate: decimal.RequireFromString(rate), IsActive: true,
	})
	require.NoError(t, err)
	return a
}

func TestCreateAffiliate_TrackingCodeFormat(t *testing.T) {
	svc, store := newTestService(t)
	user := seedUser(t, store, "p@example.com")

	a := enroll(t, svc, user.ID, "0.25")
	require.Regexp(t, regexp.MustCompile(`^AFF\d+$`), a.Code)
	require.True(t, a.TotalEarnings.IsZero())
	require.Zero(t, a.TotalReferrals)
}

func TestCreateAffiliate_Validation(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateAffiliate(ctx, &CreateAffiliateRequest{UserID: 99, CommissionRate: decimal.RequireFromString("0.1")})
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	user := seedUser(t, store, "p@example.com")
	_, err = svc.CreateAffiliate(ctx, &CreateAffiliateRequest{UserID: user.ID, CommissionRate: decimal.RequireFromString("1.5")})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	_, err = svc.CreateAffiliate(ctx, &CreateAffiliateRequest{UserID: user.ID, CommissionRate: decimal.RequireFromString("-0.1")})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestApproveReferral_CreditsEarningsOnce(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	partner := seedUser(t, store, "p@example.com")
	buyer := seedUser(t, store, "b@example.com")
	a := enroll(t, svc, partner.ID, "0.25")

	r, err := svc.CreateReferral(ctx, &CreateReferralRequest{
		AffiliateID: a.ID, ReferredUserID: buyer.ID, CommissionAmount: decimal.RequireFromString("25.00"),
	})
	require.NoError(t, err)

	approved, err := svc.ApproveReferral(ctx, r.ID)
	require.NoError(t, err)
	require.Equal(t, types.ReferralStatusApproved, approved.Status)

	reloaded, err := store.Affiliates().FindByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "25.00", reloaded.TotalEarnings.StringFixed(2))

	// Second approval fails and does not double-credit.
	_, err = svc.ApproveReferral(ctx, r.ID)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	require.Contains(t, err.Error(), "pending referral")

	reloaded, err = store.Affiliates().FindByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "25.00", reloaded.TotalEarnings.StringFixed(2))
}

func TestCalculateEarnings_SumsApprovedOnly(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	partner := seedUser(t, store, "p@example.com")
	buyer := seedUser(t, store, "b@example.com")
	a := enroll(t, svc, partner.ID, "0.25")

	amounts := []string{"10.00", "15.00", "99.99"}
	var ids []uint
	for _, amt := range amounts {
		r, err := svc.CreateReferral(ctx, &CreateReferralRequest{
			AffiliateID: a.ID, ReferredUserID: buyer.ID, CommissionAmount: decimal.RequireFromString(amt),
		})
		require.NoError(t, err)
		ids = append(ids, r.ID)
	}
	// Approve the first two; the 99.99 one stays pending.
	for _, id := range ids[:2] {
		_, err := svc.ApproveReferral(ctx, id)
		require.NoError(t, err)
	}

	total, err := svc.CalculateEarnings(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "25.00", total.StringFixed(2))

	// Unknown affiliate sums to zero, not an error.
	total, err = svc.CalculateEarnings(ctx, 999)
	require.NoError(t, err)
	require.True(t, total.IsZero())
}

func TestUpdateReferralStatus_Unconditional(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	partner := seedUser(t, store, "p@example.com")
	buyer := seedUser(t, store, "b@example.com")
	a := enroll(t, svc, partner.ID, "0.25")

	r, err := svc.CreateReferral(ctx, &CreateReferralRequest{
		AffiliateID: a.ID, ReferredUserID: buyer.ID, CommissionAmount: decimal.RequireFromString("5.00"),
	})
	require.NoError(t, err)

	// paid without ever being approved; allowed, and earnings untouched.
	got, err := svc.UpdateReferralStatus(ctx, r.ID, types.ReferralStatusPaid)
	require.NoError(t, err)
	require.Equal(t, types.ReferralStatusPaid, got.Status)

	reloaded, err := store.Affiliates().FindByID(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, reloaded.TotalEarnings.IsZero())

	_, err = svc.UpdateReferralStatus(ctx, r.ID, types.ReferralStatus("bogus"))
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCreateReferral_PreconditionOrder(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateReferral(ctx, &CreateReferralRequest{AffiliateID: 1, ReferredUserID: 2})
	require.Contains(t, err.Error(), "affiliate")

	partner := seedUser(t, store, "p@example.com")
	a := enroll(t, svc, partner.ID, "0.25")
	_, err = svc.CreateReferral(ctx, &CreateReferralRequest{AffiliateID: a.ID, ReferredUserID: 99})
	require.Contains(t, err.Error(), "referred user")

	buyer := seedUser(t, store, "b@example.com")
	bogusSub := uint(404)
	_, err = svc.CreateReferral(ctx, &CreateReferralRequest{AffiliateID: a.ID, ReferredUserID: buyer.ID, SubscriptionID: &bogusSub})
	require.Contains(t, err.Error(), "subscription")
}

func TestPayoutLifecycle_ProcessedAtStamping(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	partner := seedUser(t, store, "p@example.com")
	a := enroll(t, svc, partner.ID, "0.25")

	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	p, err := svc.CreatePayout(ctx, &CreatePayoutRequest{
		AffiliateID: a.ID, Amount: decimal.RequireFromString("50.00"), Method: "paypal",
	})
	require.NoError(t, err)
	require.Equal(t, types.PayoutStatusPending, p.Status)
	require.Nil(t, p.ProcessedAt)

	processed, err := svc.ProcessPayout(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, types.PayoutStatusProcessing, processed.Status)
	require.NotNil(t, processed.ProcessedAt)
	require.Equal(t, now, *processed.ProcessedAt)

	later := now.Add(2 * time.Hour)
	svc.now = func() time.Time { return later }
	done, err := svc.UpdatePayoutStatus(ctx, p.ID, types.PayoutStatusCompleted)
	require.NoError(t, err)
	require.Equal(t, later, *done.ProcessedAt)

	// Back to pending keeps the stamp; it is never unset.
	back, err := svc.UpdatePayoutStatus(ctx, p.ID, types.PayoutStatusPending)
	require.NoError(t, err)
	require.NotNil(t, back.ProcessedAt)
	require.Equal(t, later, *back.ProcessedAt)
}

func TestCreatePayout_Validation(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreatePayout(ctx, &CreatePayoutRequest{AffiliateID: 9, Amount: decimal.NewFromInt(1), Method: "wire"})
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	partner := seedUser(t, store, "p@example.com")
	a := enroll(t, svc, partner.ID, "0.25")
	_, err = svc.CreatePayout(ctx, &CreatePayoutRequest{AffiliateID: a.ID, Amount: decimal.Zero, Method: "wire"})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
