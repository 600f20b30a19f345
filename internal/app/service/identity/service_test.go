package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/memberhub/memberhub/internal/repository/repotest"
	"github.com/memberhub/memberhub/pkg/apperr"
	"github.com/memberhub/memberhub/pkg/config"
)

func newTestService(t *testing.T) (*Service, *repotest.Store) {
	t.Helper()
	store := repotest.NewStore()
	cfg := &config.Config{Auth: config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTLHours: 1,
		BcryptCost:    bcrypt.MinCost,
	}}
	return NewService(store.Users(), cfg, zap.NewNop().Sugar()), store
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterRequest{Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &RegisterRequest{Email: "a@example.com", Password: "other"})
	require.Error(t, err)
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestLogin_RoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, &RegisterRequest{Email: "a@example.com", Password: "pw", FirstName: "Ada"})
	require.NoError(t, err)
	require.NotEmpty(t, reg.Token)

	res, err := svc.Login(ctx, "a@example.com", "pw")
	require.NoError(t, err)
	require.Equal(t, reg.User.ID, res.User.ID)

	claims, err := svc.ParseToken(res.Token)
	require.NoError(t, err)
	require.Equal(t, reg.User.ID, claims.UserID)
	require.False(t, claims.IsAdmin)
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterRequest{Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)

	_, errWrong := svc.Login(ctx, "a@example.com", "nope")
	_, errUnknown := svc.Login(ctx, "b@example.com", "pw")
	require.Equal(t, apperr.KindUnauthorized, apperr.KindOf(errWrong))
	require.Equal(t, apperr.KindUnauthorized, apperr.KindOf(errUnknown))
	require.Equal(t, errWrong.Error(), errUnknown.Error())
}

func TestLogin_DeactivatedAccountRejected(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, &RegisterRequest{Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, svc.DeactivateUser(ctx, reg.User.ID))

	_, err = svc.Login(ctx, "a@example.com", "pw")
	require.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestDeactivateUser_Idempotent(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, &RegisterRequest{Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateUser(ctx, reg.User.ID))
	require.NoError(t, svc.DeactivateUser(ctx, reg.User.ID))

	u, err := store.Users().FindByID(ctx, reg.User.ID)
	require.NoError(t, err)
	require.False(t, u.IsActive)
}

func TestDeactivateUser_MissingUser(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.DeactivateUser(context.Background(), 999)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdateUser_AppliesOnlyProvidedFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, &RegisterRequest{Email: "a@example.com", Password: "pw", FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)

	phone := "+1-555-0100"
	u, err := svc.UpdateUser(ctx, reg.User.ID, &UserUpdate{Phone: &phone})
	require.NoError(t, err)
	require.Equal(t, "Ada", u.FirstName)
	require.Equal(t, "Lovelace", u.LastName)
	require.Equal(t, phone, u.Phone)
}

func TestParseToken_ExpiredRejected(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	reg, err := svc.Register(ctx, &RegisterRequest{Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ParseToken(reg.Token)
	require.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}
