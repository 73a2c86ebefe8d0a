package middleware

import (
	"strconv"

	"yatube/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics 以路由模板作为 label, 未匹配的路由记为 unmatched
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ActiveRequests.Inc()
		timer := prometheus.NewTimer(metrics.HttpRequestDuration.WithLabelValues(route, c.Request.Method))

		c.Next()

		timer.ObserveDuration()
		metrics.ActiveRequests.Dec()
		metrics.HttpRequestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
