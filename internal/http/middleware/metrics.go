package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"wedding/internal/metrics"
)

// Metrics records request counts and latency by route template. A panicking
// handler is counted as a 500 and the panic is passed on to gin.Recovery.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		metrics.HTTPInFlight.Inc()
		start := time.Now()
		defer func() {
			p := recover()
			status := c.Writer.Status()
			if p != nil {
				status = http.StatusInternalServerError
			}

			path := c.FullPath()
			if path == "" {
				path = "unmatched"
			}
			method := c.Request.Method
			metrics.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
			metrics.HTTPDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			metrics.HTTPInFlight.Dec()

			if p != nil {
				panic(p)
			}
		}()
		c.Next()
	}
}
