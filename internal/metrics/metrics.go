package metrics

import (
	"net/http"
	"strconv"
	"time"

	"Buddy_Community/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "community",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "community",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "community",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "community",
			Subsystem: "domain",
			Name:      "operations_total",
			Help:      "Community operations by outcome code.",
		},
		[]string{"op", "code"},
	)

	outboxEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "community",
			Subsystem: "outbox",
			Name:      "events_total",
			Help:      "Outbox events relayed, by event type and result.",
		},
		[]string{"event", "result"},
	)

	reconciled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "community",
			Subsystem: "reconciler",
			Name:      "fixed_total",
			Help:      "Like counters rewritten by the reconciler.",
		},
		[]string{"kind"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		operations,
		outboxEvents,
		reconciled,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// GinMiddleware 按路由模板统计，避免 id 撑爆标签
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordOperation 业务错误记交易码，基础设施错误记 500
func RecordOperation(op string, err error) {
	code := pkg.CodeSuccess
	if err != nil {
		code = pkg.CodeInternal
		if be, ok := pkg.AsBizError(err); ok {
			code = be.Code
		}
	}
	operations.WithLabelValues(op, strconv.Itoa(code)).Inc()
}

func RecordOutbox(event string, err error) {
	result := "sent"
	if err != nil {
		result = "retry"
	}
	outboxEvents.WithLabelValues(event, result).Inc()
}

func RecordReconciled(kind string) {
	reconciled.WithLabelValues(kind).Inc()
}
