package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// attaches a request-scoped logger to the request context and logs each
// request on completion. Handlers retrieve it with FromContext so their
// log lines carry the request id
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		reqLogger := With(
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)

		c.Request = c.Request.WithContext(WithContext(c.Request.Context(), reqLogger))
		c.Writer.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		reqLogger.Info("request completed",
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}
