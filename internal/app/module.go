package app

import (
	"github.com/memberhub/memberhub/internal/app/api/server"
	affsvc "github.com/memberhub/memberhub/internal/app/service/affiliate"
	"github.com/memberhub/memberhub/internal/app/service/analytics"
	"github.com/memberhub/memberhub/internal/app/service/billinglog"
	contentsvc "github.com/memberhub/memberhub/internal/app/service/content"
	"github.com/memberhub/memberhub/internal/app/service/identity"
	"github.com/memberhub/memberhub/internal/app/service/membership"
	subsvc "github.com/memberhub/memberhub/internal/app/service/subscription"
	"github.com/memberhub/memberhub/internal/platform/db"
	"github.com/memberhub/memberhub/internal/repository"
	"github.com/memberhub/memberhub/pkg/config"
	"github.com/memberhub/memberhub/pkg/logger"
	"time"

	"go.uber.org/fx"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	repository.Module,
	server.Module,
	identity.Module,
	membership.Module,
	contentsvc.Module,
	subsvc.Module,
	affsvc.Module,
	analytics.Module,
	billinglog.Module,
)
