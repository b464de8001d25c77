package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/shepherd-backend/internal/observability"
)

// Metrics records request counts and latency per route. Event streams are
// tracked by the SSE gauges instead, since their duration is the connection
// lifetime rather than a response time.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		m.ApiInflightInc()
		defer m.ApiInflightDec()

		c.Next()

		if isEventStream(c) {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveAPI(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
