package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"veab-goa.backend/pkg/logger"
)

// quietPaths are probed by load balancers and scrapers; they log at debug.
var quietPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// LoggerMiddleware writes one access log line per request. The line carries
// the request id and, once AuthMiddleware ran, the admin email.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		if quietPaths[route] && c.Writer.Status() < 400 {
			logger.Debug(c.Request.Context(), "HTTP Request",
				zap.String("route", route),
				zap.Int("status", c.Writer.Status()),
			)
			return
		}
		logger.LogRequest(c.Request.Context(), c.Request.Method, route, c.Writer.Status(), latency, c.ClientIP())
	}
}
