package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nyatsime/portal-api/internal/service"
)

// Metrics records portal request counts and latency. Observations use
// the route template (e.g. /api/report/:id) so learner and staff
// identifiers never become label values; unmatched requests fall back
// to the raw path.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
