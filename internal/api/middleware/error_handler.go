package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deployhub/orchestrator/internal/platform/logger"
)

// ErrorHandler recovers a panicking handler, logs it through the structured
// logger (§A.3), and returns a generic 500 instead of crashing the process.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Get().Error("panic recovered", "error", err, "path", c.Request.URL.Path)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_SERVER_ERROR",
						"message": "An unexpected error occurred",
					},
				})
			}
		}()
		c.Next()
	}
}
