package http

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
}

// MetricsMiddleware records a request counter and a duration histogram per
// route. Webhook endpoints are high-traffic, so labels use the route pattern
// rather than the raw path.
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			endpoint := c.Path()
			if endpoint == "" {
				endpoint = c.Request().URL.Path
			}
			status := c.Response().Status
			if err != nil {
				if httpErr, ok := err.(*echo.HTTPError); ok {
					status = httpErr.Code
				}
			}

			httpRequestsTotal.WithLabelValues(c.Request().Method, endpoint,
				strconv.Itoa(status)).Inc()
			httpRequestDuration.WithLabelValues(c.Request().Method, endpoint).
				Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// MetricsHandler exposes the prometheus scrape endpoint.
func MetricsHandler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
