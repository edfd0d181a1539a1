package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the application collectors. Each instance owns a private registry so
// constructing it more than once (tests) never panics on duplicate registration.
type Metrics struct {
	Registry *prometheus.Registry

	renders       *prometheus.CounterVec
	renderLatency *prometheus.HistogramVec
	emails        *prometheus.CounterVec
	assetFetches  *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
}

// New creates the registry and registers every collector.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		renders: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docflow_document_renders_total",
				Help: "Rendered documents by kind and outcome.",
			},
			[]string{"kind", "outcome"},
		),
		renderLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "docflow_document_render_duration_seconds",
				Help:    "Time spent composing documents.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		emails: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docflow_document_emails_total",
				Help: "Document email dispatches by outcome.",
			},
			[]string{"outcome"},
		),
		assetFetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docflow_asset_fetches_total",
				Help: "Asset fetches by scheme and outcome.",
			},
			[]string{"scheme", "outcome"},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docflow_stats_cache_lookups_total",
				Help: "List statistics cache lookups by result.",
			},
			[]string{"result"},
		),
	}
}

// ObserveRender records one render attempt.
func (m *Metrics) ObserveRender(kind string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(kind, outcome(err)).Inc()
	m.renderLatency.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// ObserveEmail records one dispatch attempt.
func (m *Metrics) ObserveEmail(err error) {
	if m == nil {
		return
	}
	m.emails.WithLabelValues(outcome(err)).Inc()
}

// ObserveAssetFetch records one asset fetch.
func (m *Metrics) ObserveAssetFetch(scheme string, err error) {
	if m == nil {
		return
	}
	m.assetFetches.WithLabelValues(scheme, outcome(err)).Inc()
}

// ObserveCacheLookup records a stats cache hit or miss.
func (m *Metrics) ObserveCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
