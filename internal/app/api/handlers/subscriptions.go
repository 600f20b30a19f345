package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/memberhub/memberhub/internal/app/api/middleware"
	subsvc "github.com/memberhub/memberhub/internal/app/service/subscription"
	"github.com/memberhub/memberhub/internal/models"
	"github.com/memberhub/memberhub/internal/repository/contract"
	"github.com/memberhub/memberhub/pkg/response"
	"github.com/memberhub/memberhub/pkg/types"
)

type createSubscriptionRequest struct {
	MembershipLevelID      uint            `json:"membership_level_id"`
	ProviderSubscriptionID *string         `json:"provider_subscription_id"`
	Amount                 decimal.Decimal `json:"amount"`
	Currency               string          `json:"currency"`
	AffiliateID            *uint           `json:"affiliate_id"`
}

// @Summary      Create subscription
// @Description  Opens an active subscription for the caller, attributing the affiliate when given.
// @Tags         Subscription
// @Accept       json
// @Produce      json
// @Param        request body handlers.createSubscriptionRequest true "Subscription request"
// @Success      200  {object}  handlers.RespSubscription
// @Router       /api/v1/subscriptions [post]
func ApiCreateSubscription(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CallerUserID(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorMsg[any](response.APIResponseCodeUnauthorized, "not authenticated"))
			return
		}
		var req createSubscriptionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		sub, err := svc.Create(c.Request.Context(), &subsvc.CreateRequest{
			UserID:                 userID,
			MembershipLevelID:      req.MembershipLevelID,
			ProviderSubscriptionID: req.ProviderSubscriptionID,
			Amount:                 req.Amount,
			Currency:               req.Currency,
			AffiliateID:            req.AffiliateID,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(sub))
	}
}

// @Summary      Cancel subscription
// @Tags         Subscription
// @Produce      json
// @Param        id path int true "Subscription ID"
// @Success      200  {object}  handlers.RespSubscription
// @Router       /api/v1/subscriptions/{id}/cancel [post]
func ApiCancelSubscription(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		sub, err := svc.Cancel(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(sub))
	}
}

// @Summary      Renew subscription (Admin)
// @Description  Starts a fresh period from now and forces the status to active.
// @Tags         Admin
// @Produce      json
// @Param        id path int true "Subscription ID"
// @Success      200  {object}  handlers.RespSubscription
// @Router       /api/v1/admin/subscriptions/{id}/renew [post]
func ApiRenewSubscription(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		sub, err := svc.Renew(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(sub))
	}
}

type updateSubscriptionStatusRequest struct {
	Status types.SubscriptionStatus `json:"status"`
}

// @Summary      Update subscription status (Admin)
// @Description  Overwrites the status unconditionally.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path int true "Subscription ID"
// @Param        request body handlers.updateSubscriptionStatusRequest true "Target status"
// @Success      200  {object}  handlers.RespSubscription
// @Router       /api/v1/admin/subscriptions/{id}/status [post]
func ApiUpdateSubscriptionStatus(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req updateSubscriptionStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		sub, err := svc.UpdateStatus(c.Request.Context(), id, req.Status)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(sub))
	}
}

// @Summary      My active subscription
// @Description  Returns the active-status subscription, or null data when none exists.
// @Tags         Subscription
// @Produce      json
// @Success      200  {object}  handlers.RespSubscription
// @Router       /api/v1/subscriptions/active [get]
func ApiMyActiveSubscription(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CallerUserID(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorMsg[any](response.APIResponseCodeUnauthorized, "not authenticated"))
			return
		}
		sub, err := svc.GetActive(c.Request.Context(), userID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(sub))
	}
}

// @Summary      My subscriptions
// @Tags         Subscription
// @Produce      json
// @Success      200  {object}  handlers.RespSubscriptionList
// @Router       /api/v1/subscriptions [get]
func ApiMySubscriptions(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CallerUserID(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorMsg[any](response.APIResponseCodeUnauthorized, "not authenticated"))
			return
		}
		subs, err := svc.ListByUser(c.Request.Context(), userID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(subs))
	}
}

type listSubscriptionsRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

// subscriptionItem is the admin listing view; money is rendered as a fixed
// two-decimal string.
type subscriptionItem struct {
	ID                     uint                     `json:"id"`
	UserID                 uint                     `json:"user_id"`
	MembershipLevelID      uint                     `json:"membership_level_id"`
	ProviderSubscriptionID *string                  `json:"provider_subscription_id"`
	Status                 types.SubscriptionStatus `json:"status"`
	CurrentPeriodStart     time.Time                `json:"current_period_start"`
	CurrentPeriodEnd       time.Time                `json:"current_period_end"`
	Amount                 string                   `json:"amount"`
	Currency               string                   `json:"currency"`
	AffiliateID            *uint                    `json:"affiliate_id"`
	CreatedAt              time.Time                `json:"created_at"`
	UpdatedAt              time.Time                `json:"updated_at"`
}

func toSubscriptionItem(m *models.Subscription) *subscriptionItem {
	return &subscriptionItem{
		ID:                     m.ID,
		UserID:                 m.UserID,
		MembershipLevelID:      m.MembershipLevelID,
		ProviderSubscriptionID: m.ProviderSubscriptionID,
		Status:                 m.Status,
		CurrentPeriodStart:     m.CurrentPeriodStart,
		CurrentPeriodEnd:       m.CurrentPeriodEnd,
		Amount:                 m.Amount.StringFixed(2),
		Currency:               m.Currency,
		AffiliateID:            m.AffiliateID,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
}

type listSubscriptionsResponse struct {
	Items []*subscriptionItem `json:"items"`
	Total int64               `json:"total"`
}

// @Summary      List subscriptions (Admin)
// @Description  Paginated and filterable listing of all subscriptions.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body handlers.listSubscriptionsRequest true "List request with filters, pagination, and sorting"
// @Success      200  {object}  handlers.RespSubscriptionList
// @Router       /api/v1/admin/subscriptions/list [post]
func ApiListSubscriptions(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req listSubscriptionsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		size := req.Size
		if size <= 0 {
			size = 100
		}
		items, total, err := svc.List(c.Request.Context(), &contract.ListSubscriptionsRequest{
			Filters:   req.Filters,
			From:      req.From,
			Size:      size,
			SortBy:    req.SortBy,
			SortOrder: req.SortOrder,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		out := lo.Map(items, func(it *models.Subscription, _ int) *subscriptionItem { return toSubscriptionItem(it) })
		c.JSON(http.StatusOK, response.OKT(&listSubscriptionsResponse{Items: out, Total: total}))
	}
}

// legacy helper kept for scripted listings; reads pagination from query.
func ApiListUserSubscriptions(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDStr := c.Query("user_id")
		if userIDStr == "" {
			respondBadRequest(c, "missing user_id")
			return
		}
		userID, err := strconv.ParseUint(userIDStr, 10, 64)
		if err != nil {
			respondBadRequest(c, "invalid user_id")
			return
		}
		subs, err := svc.ListByUser(c.Request.Context(), uint(userID))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(subs))
	}
}

func RegisterSubscriptionRoutes(authed gin.IRouter, admin gin.IRouter, svc *subsvc.Service) {
	authed.POST("/subscriptions", ApiCreateSubscription(svc))
	authed.GET("/subscriptions", ApiMySubscriptions(svc))
	authed.GET("/subscriptions/active", ApiMyActiveSubscription(svc))
	authed.POST("/subscriptions/:id/cancel", ApiCancelSubscription(svc))
	admin.POST("/subscriptions/list", ApiListSubscriptions(svc))
	admin.GET("/subscriptions/by_user", ApiListUserSubscriptions(svc))
	admin.POST("/subscriptions/:id/renew", ApiRenewSubscription(svc))
	admin.POST("/subscriptions/:id/status", ApiUpdateSubscriptionStatus(svc))
}
