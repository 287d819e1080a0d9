package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TheJisus28/bookstore-api/pkg/metrics"
)

// Metrics HTTP指标
// path标签使用路由模板（/api/v1/books/:id），未匹配的路由统一记为unmatched
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.IncGauge(metrics.HTTPRequestsInProgress)
		start := time.Now()

		c.Next()

		metrics.DecGauge(metrics.HTTPRequestsInProgress)
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.IncCounterVec(metrics.HTTPRequestsTotal, map[string]string{
			"method": c.Request.Method,
			"path":   path,
			"status": strconv.Itoa(c.Writer.Status()),
		})
		metrics.ObserveHistogramVec(metrics.HTTPRequestDuration, map[string]string{
			"method": c.Request.Method,
			"path":   path,
		}, time.Since(start).Seconds())
	}
}
