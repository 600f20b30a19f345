package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/memberhub/memberhub/internal/app/service/identity"
	"github.com/memberhub/memberhub/pkg/response"
)

// @Summary      List users (Admin)
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  handlers.RespUserList
// @Router       /api/v1/admin/users [get]
func ApiListUsers(ids *identity.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := ids.ListUsers(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(users))
	}
}

// @Summary      Get user (Admin)
// @Tags         Admin
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200  {object}  handlers.RespUser
// @Router       /api/v1/admin/users/{id} [get]
func ApiGetUser(ids *identity.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		user, err := ids.GetUser(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(user))
	}
}

// @Summary      Update user (Admin)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path int true "User ID"
// @Param        request body identity.UserUpdate true "Profile update"
// @Success      200  {object}  handlers.RespUser
// @Router       /api/v1/admin/users/{id} [patch]
func ApiUpdateUser(ids *identity.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var update identity.UserUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		user, err := ids.UpdateUser(c.Request.Context(), id, &update)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(user))
	}
}

// @Summary      Deactivate user (Admin)
// @Description  Clears the active flag. Already-inactive accounts succeed silently.
// @Tags         Admin
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/users/{id}/deactivate [post]
func ApiDeactivateUser(ids *identity.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := ids.DeactivateUser(c.Request.Context(), id); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT[any](nil))
	}
}

func RegisterUserRoutes(admin gin.IRouter, ids *identity.Service) {
	admin.GET("/users", ApiListUsers(ids))
	admin.GET("/users/:id", ApiGetUser(ids))
	admin.PATCH("/users/:id", ApiUpdateUser(ids))
	admin.POST("/users/:id/deactivate", ApiDeactivateUser(ids))
}
