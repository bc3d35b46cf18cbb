package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Classification metrics
	ClassificationsTotal   *prometheus.CounterVec
	ClassificationDuration prometheus.Histogram
	ClassificationCacheOps *prometheus.CounterVec

	// Dispatch metrics
	DispatchTotal   *prometheus.CounterVec
	DispatchSeconds *prometheus.HistogramVec

	// Resolver metrics
	ResolveTotal *prometheus.CounterVec

	// Conversation state metrics
	ConversationEvents *prometheus.CounterVec
	ConversationActive prometheus.Gauge

	// QA backend metrics
	QABackendTotal   *prometheus.CounterVec
	QABackendSeconds prometheus.Histogram

	// Webhook metrics
	WebhookRequestsTotal   *prometheus.CounterVec
	WebhookDurationSeconds *prometheus.HistogramVec

	// Rate limiter metrics
	RateLimiterDropped *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	return &Metrics{
		ClassificationsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campusbot_classifications_total",
				Help: "Total number of intent classifications by source and intent",
			},
			[]string{"source", "intent"}, // source: pending, cache, rule, llm, default
		),

		ClassificationDuration: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "campusbot_classification_duration_seconds",
				Help:    "Intent classification duration in seconds",
				Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10},
			},
		),

		ClassificationCacheOps: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campusbot_classification_cache_total",
				Help: "Classification cache operations",
			},
			[]string{"result"}, // result: hit, miss
		),

		DispatchTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campusbot_dispatch_total",
				Help: "Total number of tool dispatches by tool and status",
			},
			[]string{"tool", "status"}, // status: answered, follow_up, failed
		),

		DispatchSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "campusbot_dispatch_duration_seconds",
				Help:    "Tool handling duration in seconds by tool",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"tool"},
		),

		ResolveTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campusbot_resolve_total",
				Help: "Catalog resolution attempts by catalog and matching strategy",
			},
			[]string{"catalog", "strategy"}, // strategy includes "none" for misses
		),

		ConversationEvents: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campusbot_conversation_events_total",
				Help: "Slot-filling conversation state transitions",
			},
			[]string{"event"}, // event: started, overwritten, consumed, expired
		),

		ConversationActive: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "campusbot_conversation_active",
				Help: "Number of users with a pending slot-filling dialogue",
			},
		),

		QABackendTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campusbot_qa_backend_total",
				Help: "Semantic QA backend calls by backend and status",
			},
			[]string{"backend", "status"}, // backend: remote, bm25; status: success, error
		),

		QABackendSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "campusbot_qa_backend_duration_seconds",
				Help:    "Semantic QA backend call duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30},
			},
		),

		WebhookRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campusbot_webhook_requests_total",
				Help: "Total number of webhook events by type and status",
			},
			[]string{"event_type", "status"},
		),

		WebhookDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "campusbot_webhook_duration_seconds",
				Help:    "Webhook processing duration in seconds by event type",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"event_type"},
		),

		RateLimiterDropped: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campusbot_rate_limiter_dropped_total",
				Help: "Requests dropped by rate limiting",
			},
			[]string{"limiter"},
		),
	}
}

// RecordClassification records a classification outcome.
func (m *Metrics) RecordClassification(source, intent string) {
	if m == nil {
		return
	}
	m.ClassificationsTotal.WithLabelValues(source, intent).Inc()
}

// RecordClassificationDuration records how long an LLM classification took.
func (m *Metrics) RecordClassificationDuration(seconds float64) {
	if m == nil {
		return
	}
	m.ClassificationDuration.Observe(seconds)
}

// RecordCacheOp records a classification cache hit or miss.
func (m *Metrics) RecordCacheOp(result string) {
	if m == nil {
		return
	}
	m.ClassificationCacheOps.WithLabelValues(result).Inc()
}

// RecordDispatch records a dispatch outcome.
func (m *Metrics) RecordDispatch(tool, status string, seconds float64) {
	if m == nil {
		return
	}
	m.DispatchTotal.WithLabelValues(tool, status).Inc()
	m.DispatchSeconds.WithLabelValues(tool).Observe(seconds)
}

// RecordResolve records a resolver attempt.
func (m *Metrics) RecordResolve(catalog, strategy string) {
	if m == nil {
		return
	}
	m.ResolveTotal.WithLabelValues(catalog, strategy).Inc()
}

// RecordConversation records a slot-filling state transition.
func (m *Metrics) RecordConversation(event string) {
	if m == nil {
		return
	}
	m.ConversationEvents.WithLabelValues(event).Inc()
}

// SetConversationActive updates the pending dialogue gauge.
func (m *Metrics) SetConversationActive(n int) {
	if m == nil {
		return
	}
	m.ConversationActive.Set(float64(n))
}

// RecordQABackend records a QA backend call.
func (m *Metrics) RecordQABackend(backend, status string, seconds float64) {
	if m == nil {
		return
	}
	m.QABackendTotal.WithLabelValues(backend, status).Inc()
	m.QABackendSeconds.Observe(seconds)
}

// RecordRateLimiterDrop records a dropped request.
func (m *Metrics) RecordRateLimiterDrop(limiter string) {
	if m == nil {
		return
	}
	m.RateLimiterDropped.WithLabelValues(limiter).Inc()
}

// RecordWebhook records a processed webhook event.
func (m *Metrics) RecordWebhook(eventType, status string, seconds float64) {
	if m == nil {
		return
	}
	m.WebhookRequestsTotal.WithLabelValues(eventType, status).Inc()
	m.WebhookDurationSeconds.WithLabelValues(eventType).Observe(seconds)
}
