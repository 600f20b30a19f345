package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/memberhub/memberhub/internal/app/service/billinglog"
	subsvc "github.com/memberhub/memberhub/internal/app/service/subscription"
	"github.com/memberhub/memberhub/internal/models"
	"github.com/memberhub/memberhub/pkg/logctx"
	"github.com/memberhub/memberhub/pkg/response"
	"github.com/memberhub/memberhub/pkg/types"

	"go.uber.org/zap"
)

type billingEvent struct {
	Provider       string `json:"provider"`
	EventType      string `json:"event_type"`
	SubscriptionID *uint  `json:"subscription_id"`
	Status         string `json:"status"`
}

// @Summary      Billing webhook
// @Description  Accepts billing-provider events. The raw payload is logged; when the event carries a subscription id and a mappable status, the subscription is updated.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/billing/webhook [post]
func ApiBillingWebhook(subs *subsvc.Service, logs *billinglog.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil || len(body) == 0 {
			respondBadRequest(c, "empty body")
			return
		}

		var event billingEvent
		entry := &models.BillingEventLog{
			Payload: datatypes.JSON(body),
			TraceID: c.GetString(logctx.TraceIDKey),
			Status:  models.BillingEventLogStatusReceived,
		}
		if err := json.Unmarshal(body, &event); err != nil {
			entry.Status = models.BillingEventLogStatusHandleFailed
			logs.Save(c.Request.Context(), entry)
			respondBadRequest(c, "malformed event")
			return
		}
		entry.Provider = event.Provider
		entry.EventType = event.EventType
		entry.SubscriptionID = event.SubscriptionID

		if event.SubscriptionID != nil && event.Status != "" {
			status := types.SubscriptionStatus(event.Status)
			if status.Valid() {
				if _, err := subs.UpdateStatus(c.Request.Context(), *event.SubscriptionID, status); err != nil {
					entry.Status = models.BillingEventLogStatusHandleFailed
					logctx.FromCtx(c.Request.Context(), log).Errorw("billing_event_apply_failed",
						"subscription_id", *event.SubscriptionID, "status", event.Status, "err", err)
					logs.Save(c.Request.Context(), entry)
					respondErr(c, err)
					return
				}
				entry.Status = models.BillingEventLogStatusHandled
			}
		}
		logs.Save(c.Request.Context(), entry)
		c.JSON(http.StatusOK, response.OKT[any](nil))
	}
}

func RegisterBillingWebhookRoutes(r gin.IRouter, subs *subsvc.Service, logs *billinglog.Service, log *zap.SugaredLogger) {
	r.POST("/billing/webhook", ApiBillingWebhook(subs, logs, log))
}
