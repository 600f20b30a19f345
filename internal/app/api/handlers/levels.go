package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/memberhub/memberhub/internal/app/service/membership"
	"github.com/memberhub/memberhub/pkg/response"
)

// @Summary      List membership levels
// @Description  Returns active levels; pass all=true for every level.
// @Tags         Membership
// @Produce      json
// @Param        all query bool false "Include inactive levels"
// @Success      200  {object}  handlers.RespLevelList
// @Router       /api/v1/levels [get]
func ApiListLevels(svc *membership.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		activeOnly := c.Query("all") != "true"
		levels, err := svc.ListLevels(c.Request.Context(), activeOnly)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(levels))
	}
}

// @Summary      Get membership level
// @Tags         Membership
// @Produce      json
// @Param        id path int true "Level ID"
// @Success      200  {object}  handlers.RespLevel
// @Router       /api/v1/levels/{id} [get]
func ApiGetLevel(svc *membership.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		level, err := svc.GetLevel(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(level))
	}
}

// @Summary      Create membership level (Admin)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body membership.CreateLevelRequest true "Level definition"
// @Success      200  {object}  handlers.RespLevel
// @Router       /api/v1/admin/levels [post]
func ApiCreateLevel(svc *membership.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req membership.CreateLevelRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		level, err := svc.CreateLevel(c.Request.Context(), &req)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(level))
	}
}

// @Summary      Update membership level (Admin)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path int true "Level ID"
// @Param        request body membership.LevelUpdate true "Level update"
// @Success      200  {object}  handlers.RespLevel
// @Router       /api/v1/admin/levels/{id} [patch]
func ApiUpdateLevel(svc *membership.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var update membership.LevelUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		level, err := svc.UpdateLevel(c.Request.Context(), id, &update)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(level))
	}
}

func RegisterLevelRoutes(public gin.IRouter, admin gin.IRouter, svc *membership.Service) {
	public.GET("/levels", ApiListLevels(svc))
	public.GET("/levels/:id", ApiGetLevel(svc))
	admin.POST("/levels", ApiCreateLevel(svc))
	admin.PATCH("/levels/:id", ApiUpdateLevel(svc))
}
