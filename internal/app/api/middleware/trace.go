package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/memberhub/memberhub/pkg/logctx"
)

// TraceMiddleware assigns every request a trace id: the client-supplied
// X-Request-ID when present, otherwise a fresh UUID. The id is stored under
// logctx.TraceIDKey in both gin.Context and the request's context.Context so
// services and the billing event log can pick it up.
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader("X-Request-ID")
		if traceID == "" {
			traceID = uuid.New().String()
		}

		c.Set(logctx.TraceIDKey, traceID)
		ctx := context.WithValue(c.Request.Context(), logctx.TraceIDKey, traceID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
