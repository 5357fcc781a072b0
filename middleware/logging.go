package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger returns a gin middleware that logs every request with its
// method, path, status, and duration.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}

		if status >= 500 {
			if len(c.Errors) > 0 {
				attrs = append(attrs, "error", c.Errors.Last().Error())
			}
			slog.Error("request failed", attrs...)
		} else if status >= 400 {
			slog.Warn("request rejected", attrs...)
		} else {
			slog.Info("request ok", attrs...)
		}
	}
}
