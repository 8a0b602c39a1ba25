package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wedding_http_requests_total",
		Help: "Total number of HTTP requests by method, route and status.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wedding_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

// Collector records domain events. A nil *Collector is a no-op.
type Collector struct {
	moderationVerdicts *prometheus.CounterVec
	moderationFailures prometheus.Counter
	storageUploads     *prometheus.CounterVec
	storageFallbacks   *prometheus.CounterVec
	paymentOrders      *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		moderationVerdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wedding_moderation_verdicts_total",
			Help: "Moderation verdicts by outcome.",
		}, []string{"verdict"}),
		moderationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wedding_moderation_failures_total",
			Help: "Classifier calls that failed and were resolved by the failure policy.",
		}),
		storageUploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wedding_storage_uploads_total",
			Help: "Stored media objects by backend.",
		}, []string{"backend"}),
		storageFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wedding_storage_fallbacks_total",
			Help: "Uploads written to local disk after the configured backend failed.",
		}, []string{"backend"}),
		paymentOrders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wedding_payment_orders_total",
			Help: "Payment orders by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		c.moderationVerdicts,
		c.moderationFailures,
		c.storageUploads,
		c.storageFallbacks,
		c.paymentOrders,
	)

	return c
}

func (c *Collector) RecordModerationVerdict(safe bool) {
	if c == nil {
		return
	}

	verdict := "unsafe"
	if safe {
		verdict = "safe"
	}
	c.moderationVerdicts.WithLabelValues(verdict).Inc()
}

func (c *Collector) RecordModerationFailure() {
	if c == nil {
		return
	}
	c.moderationFailures.Inc()
}

func (c *Collector) RecordStorageUpload(backend string) {
	if c == nil {
		return
	}
	c.storageUploads.WithLabelValues(backend).Inc()
}

func (c *Collector) RecordStorageFallback(backend string) {
	if c == nil {
		return
	}
	c.storageFallbacks.WithLabelValues(backend).Inc()
}

func (c *Collector) RecordPaymentOrder(ok bool) {
	if c == nil {
		return
	}

	result := "failed"
	if ok {
		result = "created"
	}
	c.paymentOrders.WithLabelValues(result).Inc()
}
