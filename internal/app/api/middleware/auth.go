package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/memberhub/memberhub/internal/app/service/identity"
	"github.com/memberhub/memberhub/pkg/response"
)

const (
	CtxUserID  = "user_id"
	CtxIsAdmin = "is_admin"
)

// AuthMiddleware validates the bearer token and stores the caller's user id
// and admin flag in gin.Context.
func AuthMiddleware(ids *identity.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorMsg[any](response.APIResponseCodeUnauthorized, "missing bearer token"))
			return
		}
		claims, err := ids.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorMsg[any](response.APIResponseCodeUnauthorized, "invalid token"))
			return
		}
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxIsAdmin, claims.IsAdmin)
		c.Next()
	}
}

// AdminMiddleware gates a group to admin accounts. It must run after
// AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(CtxIsAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorMsg[any](response.APIResponseCodeForbidden, "admin access required"))
			return
		}
		c.Next()
	}
}

// CallerUserID returns the authenticated user id, or ok=false when the
// request passed through no auth middleware.
func CallerUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(CtxUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// OptionalAuthMiddleware resolves the caller when a valid bearer token is
// present but lets anonymous requests through. Used by the content surface,
// where visibility depends on who is asking.
func OptionalAuthMiddleware(ids *identity.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if ok && token != "" {
			if claims, err := ids.ParseToken(token); err == nil {
				c.Set(CtxUserID, claims.UserID)
				c.Set(CtxIsAdmin, claims.IsAdmin)
			}
		}
		c.Next()
	}
}
