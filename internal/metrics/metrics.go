package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 15, 30},
		},
		[]string{"method", "endpoint"},
	)

	// CorrectionOutcomes counts corrections by how their analysis was obtained.
	CorrectionOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dictation_corrections_total",
			Help: "Dictation corrections by outcome (strict, repaired, default, malformed, invocation_failed)",
		},
		[]string{"outcome"},
	)

	ModelCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dictation_model_call_seconds",
			Help:    "Latency of the completion call used for a correction",
			Buckets: []float64{1, 2, 5, 10, 20, 40, 60, 120},
		},
		[]string{"provider"},
	)

	AttemptPersistFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dictation_attempt_persist_failures_total",
			Help: "Attempts whose analysis was returned but could not be stored",
		},
	)
)

const (
	OutcomeMalformed        = "malformed"
	OutcomeInvocationFailed = "invocation_failed"
)

var registerOnce sync.Once

// Init registers every collector on the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			CorrectionOutcomes,
			ModelCallDuration,
			AttemptPersistFailures,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		RequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
