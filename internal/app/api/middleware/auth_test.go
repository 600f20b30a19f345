package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/memberhub/memberhub/internal/app/service/identity"
	"github.com/memberhub/memberhub/internal/repository/repotest"
	"github.com/memberhub/memberhub/pkg/config"
)

func newIdentity(t *testing.T) (*identity.Service, *repotest.Store) {
	t.Helper()
	store := repotest.NewStore()
	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: "test", TokenTTLHours: 1, BcryptCost: bcrypt.MinCost}}
	return identity.NewService(store.Users(), cfg, zap.NewNop().Sugar()), store
}

func registerToken(t *testing.T, ids *identity.Service, email string, admin bool, store *repotest.Store) string {
	t.Helper()
	res, err := ids.Register(context.Background(), &identity.RegisterRequest{Email: email, Password: "pw"})
	require.NoError(t, err)
	if admin {
		u, err := store.Users().FindByID(context.Background(), res.User.ID)
		require.NoError(t, err)
		u.IsAdmin = true
		require.NoError(t, store.Users().Update(context.Background(), u))
		relog, err := ids.Login(context.Background(), email, "pw")
		require.NoError(t, err)
		return relog.Token
	}
	return res.Token
}

func protectedRouter(ids *identity.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := r.Group("/", AuthMiddleware(ids))
	authed.GET("/whoami", func(c *gin.Context) {
		id, _ := CallerUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	admin := r.Group("/admin", AuthMiddleware(ids), AdminMiddleware())
	admin.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_RejectsMissingAndBadTokens(t *testing.T) {
	ids, _ := newIdentity(t)
	r := protectedRouter(ids)

	require.Equal(t, http.StatusUnauthorized, get(r, "/whoami", "").Code)
	require.Equal(t, http.StatusUnauthorized, get(r, "/whoami", "not-a-jwt").Code)
}

func TestAuthMiddleware_PassesValidToken(t *testing.T) {
	ids, store := newIdentity(t)
	r := protectedRouter(ids)
	token := registerToken(t, ids, "u@example.com", false, store)

	w := get(r, "/whoami", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "user_id")
}

func TestAdminMiddleware_Guards(t *testing.T) {
	ids, store := newIdentity(t)
	r := protectedRouter(ids)

	member := registerToken(t, ids, "member@example.com", false, store)
	admin := registerToken(t, ids, "admin@example.com", true, store)

	require.Equal(t, http.StatusForbidden, get(r, "/admin/ping", member).Code)
	require.Equal(t, http.StatusOK, get(r, "/admin/ping", admin).Code)
}

func TestOptionalAuthMiddleware_AdmitsAnonymous(t *testing.T) {
	ids, store := newIdentity(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/open", OptionalAuthMiddleware(ids), func(c *gin.Context) {
		if id, ok := CallerUserID(c); ok {
			c.JSON(http.StatusOK, gin.H{"user_id": id})
			return
		}
		c.JSON(http.StatusOK, gin.H{"anonymous": true})
	})

	require.Contains(t, get(r, "/open", "").Body.String(), "anonymous")

	token := registerToken(t, ids, "u@example.com", false, store)
	require.Contains(t, get(r, "/open", token).Body.String(), "user_id")

	// A garbage token degrades to anonymous rather than failing.
	require.Contains(t, get(r, "/open", "garbage").Body.String(), "anonymous")
}
