package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"appsuite-be/internal/metrics"
)

// Metrics tracks HTTP request metrics by route template, so short codes do not explode label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.RequestDuration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
		metrics.RequestTotal.WithLabelValues(c.Request.Method, route, status).Inc()
	}
}
