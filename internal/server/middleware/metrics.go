package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cowrite/cowrite/internal/metrics"
)

// WithMetrics records every request on m, labelled by route template.
func WithMetrics(m *metrics.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		m.Record(c.Request.Context(), c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
