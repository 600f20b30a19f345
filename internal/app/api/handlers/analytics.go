package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/memberhub/memberhub/internal/app/service/analytics"
	"github.com/memberhub/memberhub/pkg/response"
)

// @Summary      Dashboard (Admin)
// @Description  Platform-wide counts, revenue and pending payout totals.
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  handlers.RespDashboard
// @Router       /api/v1/admin/analytics/dashboard [get]
func ApiDashboard(svc *analytics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := svc.GetDashboard(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(d))
	}
}

// @Summary      Affiliate stats (Admin)
// @Tags         Admin
// @Produce      json
// @Param        id path int true "Affiliate ID"
// @Success      200  {object}  handlers.RespAffiliateStats
// @Router       /api/v1/admin/analytics/affiliate/{id} [get]
func ApiAffiliateStats(svc *analytics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		stats, err := svc.GetAffiliateStats(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(stats))
	}
}

// @Summary      Monthly revenue (Admin)
// @Description  Per-month revenue for the trailing months, current month included.
// @Tags         Admin
// @Produce      json
// @Param        months query int false "Trailing months (default 12)"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/analytics/monthly_revenue [get]
func ApiMonthlyRevenue(svc *analytics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		months := 12
		if v := c.Query("months"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				respondBadRequest(c, "invalid months")
				return
			}
			months = n
		}
		points, err := svc.MonthlyRevenue(c.Request.Context(), months)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(points))
	}
}

// @Summary      Affiliate leaderboard (Admin)
// @Description  Active affiliates ranked by cumulative earnings.
// @Tags         Admin
// @Produce      json
// @Param        limit query int false "Maximum entries (default 10)"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/analytics/leaderboard [get]
func ApiLeaderboard(svc *analytics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 10
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				respondBadRequest(c, "invalid limit")
				return
			}
			limit = n
		}
		entries, err := svc.Leaderboard(c.Request.Context(), limit)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(entries))
	}
}

func RegisterAnalyticsRoutes(admin gin.IRouter, svc *analytics.Service) {
	admin.GET("/analytics/dashboard", ApiDashboard(svc))
	admin.GET("/analytics/affiliate/:id", ApiAffiliateStats(svc))
	admin.GET("/analytics/monthly_revenue", ApiMonthlyRevenue(svc))
	admin.GET("/analytics/leaderboard", ApiLeaderboard(svc))
}
