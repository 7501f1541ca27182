package middlewares

import (
	"fmt"
	"time"

	"codama/internal/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request with its status and latency.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		line := fmt.Sprintf("%s %s %d %s %s", c.Request.Method, path, status, time.Since(start), c.ClientIP())
		if len(c.Errors) > 0 {
			line += " errors=" + c.Errors.String()
		}

		switch {
		case status >= 500:
			log.Error(line)
		case status >= 400:
			log.Warn(line)
		default:
			log.Info(line)
		}
	}
}
