package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deployhub/orchestrator/internal/platform/logger"
)

// Logger logs every request's method, path, status, and latency through the
// structured JSON logger (§A.3), instead of Gin's default access log.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		logger.Get().Info("request",
			"method", method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"clientIp", c.ClientIP(),
		)
	}
}
