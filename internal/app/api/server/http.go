package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/memberhub/memberhub/docs"
	"github.com/memberhub/memberhub/internal/app/api/handlers"
	affsvc "github.com/memberhub/memberhub/internal/app/service/affiliate"
	"github.com/memberhub/memberhub/internal/app/service/analytics"
	"github.com/memberhub/memberhub/internal/app/service/billinglog"
	contentsvc "github.com/memberhub/memberhub/internal/app/service/content"
	"github.com/memberhub/memberhub/internal/app/service/identity"
	"github.com/memberhub/memberhub/internal/app/service/membership"
	subsvc "github.com/memberhub/memberhub/internal/app/service/subscription"
	cfgpkg "github.com/memberhub/memberhub/pkg/config"

	mw "github.com/memberhub/memberhub/internal/app/api/middleware"

	metrics "github.com/memberhub/memberhub/pkg/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Add request tracing middleware only; request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

type routeServices struct {
	fx.In

	Identity     *identity.Service
	Membership   *membership.Service
	Content      *contentsvc.Service
	Subscription *subsvc.Service
	Affiliate    *affsvc.Service
	Analytics    *analytics.Service
	BillingLog   *billinglog.Service
}

func registerRoutes(r *gin.Engine, log *zap.SugaredLogger, cfg *cfgpkg.Config, svcs routeServices) {
	// Prometheus metrics
	if cfg != nil && cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return c.Request.URL.Path
			},
			Logger: log,
		})
		p.SetListenAddress(cfg.MetricsAddr)
		p.Use(r)

		log.Infow("metrics started", "addr", cfg.MetricsAddr)
	}
	// Public group: request logger + access log
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(log))
	handlers.RegisterHealthRoutes(pub)
	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := r.Group("/api/v1")
	apiV1.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(log))

	// Auth-free surface: registration, login, the billing webhook and the
	// public catalog.
	handlers.RegisterBillingWebhookRoutes(apiV1, svcs.Subscription, svcs.BillingLog, log)

	// Content resolves the caller when a token is present but admits
	// anonymous requests.
	optional := apiV1.Group("/")
	optional.Use(mw.OptionalAuthMiddleware(svcs.Identity))

	// Authenticated surface.
	authed := apiV1.Group("/")
	authed.Use(mw.AuthMiddleware(svcs.Identity))

	// Admin surface.
	admin := apiV1.Group("/admin")
	admin.Use(mw.AuthMiddleware(svcs.Identity), mw.AdminMiddleware())

	handlers.RegisterContentRoutes(optional, admin, svcs.Content)
	handlers.RegisterAuthRoutes(apiV1, authed, svcs.Identity)
	handlers.RegisterLevelRoutes(apiV1, admin, svcs.Membership)
	handlers.RegisterMembershipRoutes(authed, admin, svcs.Membership)
	handlers.RegisterSubscriptionRoutes(authed, admin, svcs.Subscription)
	handlers.RegisterUserRoutes(admin, svcs.Identity)
	handlers.RegisterAffiliateRoutes(admin, svcs.Affiliate)
	handlers.RegisterPayoutRoutes(admin, svcs.Affiliate)
	handlers.RegisterAnalyticsRoutes(admin, svcs.Analytics)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
