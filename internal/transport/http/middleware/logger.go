package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request through zap instead of gin's default writer.
func RequestLogger(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			log.Errorw("[HTTP] "+c.Errors.String(), fields...)
			return
		}
		log.Debugw("[HTTP] request", fields...)
	}
}
