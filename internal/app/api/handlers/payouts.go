package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	affsvc "github.com/memberhub/memberhub/internal/app/service/affiliate"
	"github.com/memberhub/memberhub/pkg/response"
	"github.com/memberhub/memberhub/pkg/types"
)

// @Summary      Create payout (Admin)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body affiliate.CreatePayoutRequest true "Payout request"
// @Success      200  {object}  handlers.RespPayout
// @Router       /api/v1/admin/payouts [post]
func ApiCreatePayout(svc *affsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req affsvc.CreatePayoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		p, err := svc.CreatePayout(c.Request.Context(), &req)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(p))
	}
}

// @Summary      Process payout (Admin)
// @Description  Moves the payout to processing and stamps the processing time.
// @Tags         Admin
// @Produce      json
// @Param        id path int true "Payout ID"
// @Success      200  {object}  handlers.RespPayout
// @Router       /api/v1/admin/payouts/{id}/process [post]
func ApiProcessPayout(svc *affsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		p, err := svc.ProcessPayout(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(p))
	}
}

type updatePayoutStatusRequest struct {
	Status types.PayoutStatus `json:"status"`
}

// @Summary      Update payout status (Admin)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path int true "Payout ID"
// @Param        request body handlers.updatePayoutStatusRequest true "Target status"
// @Success      200  {object}  handlers.RespPayout
// @Router       /api/v1/admin/payouts/{id}/status [post]
func ApiUpdatePayoutStatus(svc *affsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req updatePayoutStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		p, err := svc.UpdatePayoutStatus(c.Request.Context(), id, req.Status)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(p))
	}
}

// @Summary      List payouts (Admin)
// @Description  All payouts, or one affiliate's when affiliate_id is given.
// @Tags         Admin
// @Produce      json
// @Param        affiliate_id query int false "Affiliate ID"
// @Success      200  {object}  handlers.RespPayoutList
// @Router       /api/v1/admin/payouts [get]
func ApiListPayouts(svc *affsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var affiliateID *uint
		if v := c.Query("affiliate_id"); v != "" {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				respondBadRequest(c, "invalid affiliate_id")
				return
			}
			id := uint(n)
			affiliateID = &id
		}
		list, err := svc.ListPayouts(c.Request.Context(), affiliateID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(list))
	}
}

func RegisterPayoutRoutes(admin gin.IRouter, svc *affsvc.Service) {
	admin.POST("/payouts", ApiCreatePayout(svc))
	admin.GET("/payouts", ApiListPayouts(svc))
	admin.POST("/payouts/:id/process", ApiProcessPayout(svc))
	admin.POST("/payouts/:id/status", ApiUpdatePayoutStatus(svc))
}
