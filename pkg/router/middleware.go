package router

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// unmatchedRoute labels requests that did not hit any route, so that
// arbitrary paths cannot create new series.
const unmatchedRoute = "unmatched"

var httpRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests served by the command bridge, by route, method and status code.",
	},
	[]string{"route", "method", "code"},
)

var httpRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Time spent serving HTTP requests, by route and method.",
		Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	},
	[]string{"route", "method"},
)

// registerMetrics registers the HTTP metrics and collectors with registry.
// Collectors that are already registered are skipped.
func registerMetrics(registry prometheus.Registerer, collectors ...prometheus.Collector) error {
	for _, c := range append([]prometheus.Collector{httpRequests, httpRequestDuration}, collectors...) {
		err := registry.Register(c)

		var already prometheus.AlreadyRegisteredError
		if err != nil && !errors.As(err, &already) {
			return fmt.Errorf("could not register %s with Prometheus: %w", c, err)
		}
	}

	return nil
}

// MetricsMiddleware records every request under the route template it
// matched. Command names are not part of the route, they are counted by
// the command registry.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}

		httpRequestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
		httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
