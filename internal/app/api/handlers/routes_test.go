package handlers

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	affsvc "github.com/memberhub/memberhub/internal/app/service/affiliate"
	"github.com/memberhub/memberhub/internal/app/service/analytics"
	contentsvc "github.com/memberhub/memberhub/internal/app/service/content"
	"github.com/memberhub/memberhub/internal/app/service/identity"
	"github.com/memberhub/memberhub/internal/app/service/membership"
	subsvc "github.com/memberhub/memberhub/internal/app/service/subscription"
	"github.com/memberhub/memberhub/internal/repository/repotest"
	"github.com/memberhub/memberhub/pkg/config"
)

type services struct {
	ids     *identity.Service
	member  *membership.Service
	content *contentsvc.Service
	sub     *subsvc.Service
	aff     *affsvc.Service
	stats   *analytics.Service
	store   *repotest.Store
}

func newServices(t *testing.T) *services {
	t.Helper()
	store := repotest.NewStore()
	log := zap.NewNop().Sugar()
	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: "test", TokenTTLHours: 1, BcryptCost: bcrypt.MinCost}}
	ids := identity.NewService(store.Users(), cfg, log)
	member := membership.NewService(store.Levels(), store.Memberships(), store.Users(), log)
	content := contentsvc.NewService(store.Content(), store.Levels(), member, log)
	aff := affsvc.NewService(store.Affiliates(), store.Referrals(), store.Payouts(), store.Users(), store.Subscriptions(), log)
	sub := subsvc.NewService(store.Subscriptions(), store.Users(), store.Levels(), aff, log)
	stats := analytics.NewService(store.Analytics(), store.Affiliates(), store.Referrals(), log)
	return &services{ids: ids, member: member, content: content, sub: sub, aff: aff, stats: stats, store: store}
}

func TestRegisterRoutes_Endpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svcs := newServices(t)

	r := gin.New()
	apiV1 := r.Group("/api/v1")
	admin := apiV1.Group("/admin")

	RegisterAuthRoutes(apiV1, apiV1, svcs.ids)
	RegisterLevelRoutes(apiV1, admin, svcs.member)
	RegisterMembershipRoutes(apiV1, admin, svcs.member)
	RegisterContentRoutes(apiV1, admin, svcs.content)
	RegisterSubscriptionRoutes(apiV1, admin, svcs.sub)
	RegisterUserRoutes(admin, svcs.ids)
	RegisterAffiliateRoutes(admin, svcs.aff)
	RegisterPayoutRoutes(admin, svcs.aff)
	RegisterAnalyticsRoutes(admin, svcs.stats)

	routes := r.Routes()
	contains := func(target string) bool {
		for _, rt := range routes {
			if rt.Method+" "+rt.Path == target {
				return true
			}
		}
		return false
	}

	for _, target := range []string{
		"POST /api/v1/auth/register",
		"POST /api/v1/auth/login",
		"GET /api/v1/auth/me",
		"GET /api/v1/levels",
		"POST /api/v1/admin/levels",
		"GET /api/v1/memberships/active",
		"POST /api/v1/admin/memberships",
		"GET /api/v1/content/:id",
		"DELETE /api/v1/admin/content/:id",
		"POST /api/v1/subscriptions",
		"POST /api/v1/admin/subscriptions/list",
		"POST /api/v1/admin/affiliates",
		"POST /api/v1/admin/referrals/:id/approve",
		"GET /api/v1/admin/payouts",
		"GET /api/v1/admin/analytics/dashboard",
		"GET /api/v1/admin/analytics/leaderboard",
	} {
		require.True(t, contains(target), target)
	}
}
