package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the cart service.
type Metrics struct {
	CartOperations *prometheus.CounterVec
	Checkouts      *prometheus.CounterVec
	ActiveCarts    prometheus.GaugeFunc
	httpDuration   *prometheus.HistogramVec
}

// New registers the service collectors on the default registry.
// activeCarts is polled on scrape.
func New(activeCarts func() int) *Metrics {
	return &Metrics{
		CartOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cart_operations_total",
			Help: "Cart mutations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		Checkouts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cart_checkouts_total",
			Help: "Checkout attempts by outcome.",
		}, []string{"outcome"}),
		ActiveCarts: promauto.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "cart_active_total",
			Help: "Carts currently holding at least one item.",
		}, func() float64 { return float64(activeCarts()) }),
		httpDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// RecordOperation counts one cart mutation.
func (m *Metrics) RecordOperation(operation, outcome string) {
	m.CartOperations.WithLabelValues(operation, outcome).Inc()
}

// Middleware times every request against its route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpDuration.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}
