package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var PathMetrics = "/metrics"

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "project_store_operations_total",
			Help: "Project store operations by kind and result",
		},
		[]string{"operation", "result"},
	)

	ProjectsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "project_store_projects",
			Help: "Number of projects in the last loaded snapshot",
		},
	)
)

func RecordStoreOperation(operation string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	StoreOperations.WithLabelValues(operation, result).Inc()
}

// Ingress observes request latency labelled by route template, unmatched routes share one label.
func Ingress() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

func RegisterMetricsRestAPI(r *gin.Engine) {
	r.GET(PathMetrics, gin.WrapH(promhttp.Handler()))
}
