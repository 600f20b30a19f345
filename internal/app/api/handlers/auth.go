package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/memberhub/memberhub/internal/app/api/middleware"
	"github.com/memberhub/memberhub/internal/app/service/identity"
	"github.com/memberhub/memberhub/pkg/response"
)

// @Summary      Register
// @Description  Creates an account and returns it with an access token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body identity.RegisterRequest true "Registration request"
// @Success      200  {object}  handlers.RespAuth
// @Router       /api/v1/auth/register [post]
func ApiRegister(ids *identity.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req identity.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		if req.Email == "" || req.Password == "" {
			respondBadRequest(c, "missing email or password")
			return
		}
		res, err := ids.Register(c.Request.Context(), &req)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary      Login
// @Description  Exchanges credentials for an access token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body handlers.loginRequest true "Login request"
// @Success      200  {object}  handlers.RespAuth
// @Router       /api/v1/auth/login [post]
func ApiLogin(ids *identity.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		res, err := ids.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Current user
// @Description  Returns the authenticated account.
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  handlers.RespUser
// @Router       /api/v1/auth/me [get]
func ApiMe(ids *identity.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CallerUserID(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorMsg[any](response.APIResponseCodeUnauthorized, "not authenticated"))
			return
		}
		user, err := ids.CurrentUser(c.Request.Context(), userID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(user))
	}
}

// @Summary      Update profile
// @Description  Applies the non-null profile fields to the authenticated account.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body identity.UserUpdate true "Profile update"
// @Success      200  {object}  handlers.RespUser
// @Router       /api/v1/auth/me [patch]
func ApiUpdateMe(ids *identity.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CallerUserID(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorMsg[any](response.APIResponseCodeUnauthorized, "not authenticated"))
			return
		}
		var update identity.UserUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		user, err := ids.UpdateUser(c.Request.Context(), userID, &update)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(user))
	}
}

func RegisterAuthRoutes(public gin.IRouter, authed gin.IRouter, ids *identity.Service) {
	public.POST("/auth/register", ApiRegister(ids))
	public.POST("/auth/login", ApiLogin(ids))
	authed.GET("/auth/me", ApiMe(ids))
	authed.PATCH("/auth/me", ApiUpdateMe(ids))
}
