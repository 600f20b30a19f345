package membership

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
)

func newTestService(t *testing.T) (*Service, *repotest.Store) {
	t.Helper()
	store := repotest.NewStore()
	return NewService(store.Levels(), store.Memberships(), store.Users(), zap.NewNop().Sugar()), store
}

func seedUser(t *testing.T, store *repotest.Store) *models.User {
	t.Helper()
	u := &models.User{Email: "member@example.com", IsActive: true}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u
}

func TestCreateLevel_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateLevel(ctx, &CreateLevelRequest{Name: "Gold", Price: decimal.NewFromInt(10), DurationDays: 0})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.CreateLevel(ctx, &CreateLevelRequest{Name: "Gold", Price: decimal.NewFromInt(-1), DurationDays: 30})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	level, err := svc.CreateLevel(ctx, &CreateLevelRequest{
		Name:         "Gold",
		Price:        decimal.RequireFromString("29.99"),
		DurationDays: 30,
		Features:     []string{"all content"},
		IsActive:     true,
	})
	require.NoError(t, err)
	require.Equal(t, "29.99", level.Price.StringFixed(2))
}

func TestGrantMembership_DefaultsToLevelDuration(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, store)

	level, err := svc.CreateLevel(ctx, &CreateLevelRequest{Name: "Gold", Price: decimal.NewFromInt(10), DurationDays: 30, IsActive: true})
	require.NoError(t, err)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	m, err := svc.GrantMembership(ctx, &GrantMembershipRequest{UserID: user.ID, MembershipLevelID: level.ID})
	require.NoError(t, err)
	require.Equal(t, now, m.StartDate)
	require.Equal(t, now.AddDate(0, 0, 30), m.EndDate)
	require.True(t, m.IsActive)
}

func TestGrantMembership_PreconditionOrder(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	// Missing user reported before missing level.
	_, err := svc.GrantMembership(ctx, &GrantMembershipRequest{UserID: 42, MembershipLevelID: 43})
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	require.Contains(t, err.Error(), "user")

	user := seedUser(t, store)
	_, err = svc.GrantMembership(ctx, &GrantMembershipRequest{UserID: user.ID, MembershipLevelID: 43})
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	require.Contains(t, err.Error(), "membership level")
}

func TestResolveActiveMembership_WindowAndFlag(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, store)

	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	// Expired window, flag still set.
	require.NoError(t, store.Memberships().Create(ctx, &models.UserMembership{
		UserID: user.ID, MembershipLevelID: 1, IsActive: true,
		StartDate: now.AddDate(0, 0, -60), EndDate: now.AddDate(0, 0, -30),
	}))
	// In-window but flag cleared.
	require.NoError(t, store.Memberships().Create(ctx, &models.UserMembership{
		UserID: user.ID, MembershipLevelID: 2, IsActive: false,
		StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 1),
	}))

	m, err := svc.ResolveActiveMembership(ctx, user.ID)
	require.NoError(t, err)
	require.Nil(t, m)

	// Two concurrent actives: the later-started one governs.
	require.NoError(t, store.Memberships().Create(ctx, &models.UserMembership{
		UserID: user.ID, MembershipLevelID: 3, IsActive: true,
		StartDate: now.AddDate(0, 0, -10), EndDate: now.AddDate(0, 0, 10),
	}))
	require.NoError(t, store.Memberships().Create(ctx, &models.UserMembership{
		UserID: user.ID, MembershipLevelID: 4, IsActive: true,
		StartDate: now.AddDate(0, 0, -2), EndDate: now.AddDate(0, 0, 20),
	}))

	m, err = svc.ResolveActiveMembership(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, uint(4), m.MembershipLevelID)
}

func TestExpireMembership_SnapsEndDate(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, store)

	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	m := &models.UserMembership{
		UserID: user.ID, MembershipLevelID: 1, IsActive: true,
		StartDate: now.AddDate(0, 0, -5), EndDate: now.AddDate(0, 0, 25),
	}
	require.NoError(t, store.Memberships().Create(ctx, m))

	expired, err := svc.ExpireMembership(ctx, m.ID)
	require.NoError(t, err)
	require.False(t, expired.IsActive)
	require.Equal(t, now, expired.EndDate)

	_, err = svc.ExpireMembership(ctx, 999)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
