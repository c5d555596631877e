package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	ProposalsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proposals_submitted_total",
		Help: "Total number of proposals submitted",
	})

	ProposalDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proposal_decisions_total",
			Help: "Total number of proposal accept/reject decisions",
		},
		[]string{"decision"}, // accepted, rejected
	)

	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notification_failures_total",
		Help: "Total number of swallowed notification delivery failures",
	})
)

// Middleware records request durations per route.
func Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		HTTPRequestDuration.WithLabelValues(
			c.Request().Method,
			c.Path(),
			strconv.Itoa(responseStatus(c, err)),
		).Observe(time.Since(start).Seconds())
		return err
	}
}

// responseStatus resolves the status this middleware should record. It runs
// before echo's error handler has written anything, so on error the response
// status still holds the 200 default: HTTP errors carry their own code and
// everything else becomes a 500 unless the handler already committed.
func responseStatus(c echo.Context, err error) int {
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he.Code
		}
		if !c.Response().Committed {
			return http.StatusInternalServerError
		}
	}
	return c.Response().Status
}

// Handler serves the Prometheus scrape endpoint.
func Handler() echo.HandlerFunc {
	h := promhttp.Handler()
	return func(c echo.Context) error {
		h.ServeHTTP(c.Response(), c.Request())
		return nil
	}
}
