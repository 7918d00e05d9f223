package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestID adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Logger logs one structured line per request
func Logger(logger *logrus.Logger) gin.HandlerFunc {
	entry := logger.WithField("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
			"request_id": c.GetString("request_id"),
		}
		switch {
		case c.Writer.Status() >= 500:
			entry.WithFields(fields).Error("Request failed")
		case len(c.Errors) > 0:
			entry.WithFields(fields).WithField("errors", c.Errors.String()).Warn("Request completed with errors")
		default:
			entry.WithFields(fields).Debug("Request completed")
		}
	}
}
