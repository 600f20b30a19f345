package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/memberhub/memberhub/internal/app/api/middleware"
	"github.com/memberhub/memberhub/internal/app/service/membership"
	"github.com/memberhub/memberhub/pkg/response"
)

// @Summary      Grant membership (Admin)
// @Description  Opens a membership window for a user. Dates default to now and now+duration.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body membership.GrantMembershipRequest true "Grant request"
// @Success      200  {object}  handlers.RespMembership
// @Router       /api/v1/admin/memberships [post]
func ApiGrantMembership(svc *membership.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req membership.GrantMembershipRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		m, err := svc.GrantMembership(c.Request.Context(), &req)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(m))
	}
}

// @Summary      Expire membership (Admin)
// @Description  Clears the active flag and snaps the end date to now.
// @Tags         Admin
// @Produce      json
// @Param        id path int true "Membership ID"
// @Success      200  {object}  handlers.RespMembership
// @Router       /api/v1/admin/memberships/{id}/expire [post]
func ApiExpireMembership(svc *membership.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		m, err := svc.ExpireMembership(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(m))
	}
}

// @Summary      My memberships
// @Tags         Membership
// @Produce      json
// @Success      200  {object}  handlers.RespMembershipList
// @Router       /api/v1/memberships [get]
func ApiMyMemberships(svc *membership.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CallerUserID(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorMsg[any](response.APIResponseCodeUnauthorized, "not authenticated"))
			return
		}
		rows, err := svc.ListByUser(c.Request.Context(), userID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(rows))
	}
}

// @Summary      My active membership
// @Description  Returns the governing membership, or null data when none is active.
// @Tags         Membership
// @Produce      json
// @Success      200  {object}  handlers.RespMembership
// @Router       /api/v1/memberships/active [get]
func ApiMyActiveMembership(svc *membership.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CallerUserID(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorMsg[any](response.APIResponseCodeUnauthorized, "not authenticated"))
			return
		}
		m, err := svc.ResolveActiveMembership(c.Request.Context(), userID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(m))
	}
}

func RegisterMembershipRoutes(authed gin.IRouter, admin gin.IRouter, svc *membership.Service) {
	authed.GET("/memberships", ApiMyMemberships(svc))
	authed.GET("/memberships/active", ApiMyActiveMembership(svc))
	admin.POST("/memberships", ApiGrantMembership(svc))
	admin.POST("/memberships/:id/expire", ApiExpireMembership(svc))
}
