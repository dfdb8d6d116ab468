package middleware

import (
	"time"

	"go-attendance/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	HeaderRequestID  = "X-Request-ID"
	ContextRequestID = "request_id"

	maxRequestIDLen = 64
)

// requestID keeps a caller supplied id when it is short enough to log and
// store in outbox rows, otherwise it mints one.
func requestID(c *gin.Context) string {
	if rid := c.GetHeader(HeaderRequestID); rid != "" && len(rid) <= maxRequestIDLen {
		return rid
	}
	return uuid.NewString()
}

// ContextLogger tags the request with an id, stores a request scoped logger in
// the standard context for services, and writes one access line when the
// handler chain returns. Register it after AuthMiddleware to capture the actor.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		rid := requestID(c)
		actor := c.GetString(ContextEmployeeID)

		c.Header(HeaderRequestID, rid)
		c.Set(ContextRequestID, rid)

		reqLogger := logger.With(zap.String("request_id", rid), zap.String("actor_id", actor))
		ctx := contextutil.WithLogger(
			contextutil.WithActorID(contextutil.WithRequestID(c.Request.Context(), rid), actor),
			reqLogger,
		)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		reqLogger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
