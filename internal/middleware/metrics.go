package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/motefuku/motefuku/storefront-api/internal/metrics"
)

// Metrics returns a middleware that records request counts and latency.
// The echo route pattern keeps the route label low-cardinality.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			metrics.HTTPRequestsTotal.WithLabelValues(
				req.Method, route, strconv.Itoa(c.Response().Status),
			).Inc()
			metrics.HTTPRequestDurationSeconds.WithLabelValues(
				req.Method, route,
			).Observe(time.Since(start).Seconds())

			return nil
		}
	}
}
