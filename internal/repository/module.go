package repository

import (
	"go.uber.org/fx"

	"github.com/memberhub/memberhub/internal/repository/gormrepo"
)

// Module provides the GORM-backed implementation of every repository contract.
var Module = fx.Options(
	fx.Provide(
		gormrepo.NewUserRepository,
		gormrepo.NewMembershipLevelRepository,
		gormrepo.NewUserMembershipRepository,
		gormrepo.NewContentRepository,
		gormrepo.NewSubscriptionRepository,
		gormrepo.NewAffiliateRepository,
		gormrepo.NewReferralRepository,
		gormrepo.NewPayoutRepository,
		gormrepo.NewAnalyticsRepository,
	),
)
