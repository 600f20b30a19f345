package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/memberhub/memberhub/pkg/logctx"
)

// RequestLoggerMiddleware derives a request-scoped logger carrying the trace
// id and stores it under logctx.LoggerKey in gin.Context and the request
// context. The trace id is mirrored back to the client as X-Request-ID.
func RequestLoggerMiddleware(base *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetString(logctx.TraceIDKey)

		reqLogger := base
		if traceID != "" {
			reqLogger = base.With("trace_id", traceID)
			c.Writer.Header().Set("X-Request-ID", traceID)
		}
		c.Set(logctx.LoggerKey, reqLogger)

		ctx := context.WithValue(c.Request.Context(), logctx.LoggerKey, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
