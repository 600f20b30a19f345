package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	affsvc "github.com/memberhub/memberhub/internal/app/service/affiliate"
	"github.com/memberhub/memberhub/pkg/response"
	"github.com/memberhub/memberhub/pkg/types"
)

// @Summary      Enroll affiliate (Admin)
// @Description  Enrolls a user into the affiliate program and issues a tracking code.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body affiliate.CreateAffiliateRequest true "Enrollment request"
// @Success      200  {object}  handlers.RespAffiliate
// @Router       /api/v1/admin/affiliates [post]
func ApiCreateAffiliate(svc *affsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req affsvc.CreateAffiliateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		a, err := svc.CreateAffiliate(c.Request.Context(), &req)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(a))
	}
}

// @Summary      List affiliates (Admin)
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  handlers.RespAffiliateList
// @Router       /api/v1/admin/affiliates [get]
func ApiListAffiliates(svc *affsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svc.ListAffiliates(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(list))
	}
}

// @Summary      Get affiliate (Admin)
// @Tags         Admin
// @Produce      json
// @Param        id path int true "Affiliate ID"
// @Success      200  {object}  handlers.RespAffiliate
// @Router       /api/v1/admin/affiliates/{id} [get]
func ApiGetAffiliate(svc *affsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		a, err := svc.GetAffiliate(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(a))
	}
}

// @Summary      Record referral (Admin)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body affiliate.CreateReferralRequest true "Referral request"
// @Success      200  {object}  handlers.RespReferral
// @Router       /api/v1/admin/referrals [post]
func ApiCreateReferral(svc *affsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req affsvc.CreateReferralRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		r, err := svc.CreateReferral(c.Request.Context(), &req)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(r))
	}
}

// @Summary      Approve referral (Admin)
// @Description  Only pending referrals can be approved; the commission is credited to the affiliate.
// @Tags         Admin
// @Produce      json
// @Param        id path int true "Referral ID"
// @Success      200  {object}  handlers.RespReferral
// @Router       /api/v1/admin/referrals/{id}/approve [post]
func ApiApproveReferral(svc *affsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		r, err := svc.ApproveReferral(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(r))
	}
}

type updateReferralStatusRequest struct {
	Status types.ReferralStatus `json:"status"`
}

// @Summary      Update referral status (Admin)
// @Description  Overwrites the status unconditionally; earnings are not adjusted.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path int true "Referral ID"
// @Param        request body handlers.updateReferralStatusRequest true "Target status"
// @Success      200  {object}  handlers.RespReferral
// @Router       /api/v1/admin/referrals/{id}/status [post]
func ApiUpdateReferralStatus(svc *affsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req updateReferralStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		r, err := svc.UpdateReferralStatus(c.Request.Context(), id, req.Status)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(r))
	}
}

// @Summary      List referrals (Admin)
// @Tags         Admin
// @Produce      json
// @Param        id path int true "Affiliate ID"
// @Success      200  {object}  handlers.RespReferralList
// @Router       /api/v1/admin/affiliates/{id}/referrals [get]
func ApiListReferrals(svc *affsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		list, err := svc.ListReferrals(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(list))
	}
}

type earningsResponse struct {
	AffiliateID     uint   `json:"affiliate_id"`
	ApprovedEarnings string `json:"approved_earnings"`
}

// @Summary      Approved earnings (Admin)
// @Description  Sum of commission over approved referrals. Unknown affiliates report zero.
// @Tags         Admin
// @Produce      json
// @Param        id path int true "Affiliate ID"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/affiliates/{id}/earnings [get]
func ApiAffiliateEarnings(svc *affsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		total, err := svc.CalculateEarnings(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(&earningsResponse{AffiliateID: id, ApprovedEarnings: total.StringFixed(2)}))
	}
}

func RegisterAffiliateRoutes(admin gin.IRouter, svc *affsvc.Service) {
	admin.POST("/affiliates", ApiCreateAffiliate(svc))
	admin.GET("/affiliates", ApiListAffiliates(svc))
	admin.GET("/affiliates/:id", ApiGetAffiliate(svc))
	admin.GET("/affiliates/:id/referrals", ApiListReferrals(svc))
	admin.GET("/affiliates/:id/earnings", ApiAffiliateEarnings(svc))
	admin.POST("/referrals", ApiCreateReferral(svc))
	admin.POST("/referrals/:id/approve", ApiApproveReferral(svc))
	admin.POST("/referrals/:id/status", ApiUpdateReferralStatus(svc))
}
