package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const requestIdHeader = "X-Request-Id"

// RequestId tags every request with an id (honoring one supplied by the
// client) and emits a structured access log line on completion.
func RequestId(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIdHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIdHeader, id)
		c.Set("requestId", id)

		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"requestId":  id,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"durationMs": time.Since(start).Milliseconds(),
		}).Info("request completed")
	}
}
