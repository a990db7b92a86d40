package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "seqr"

// Metrics groups the collectors shared by the HTTP layer, migrations and
// workers. Construct it once per registry.
type Metrics struct {
	Requests           *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	CaseReviewRepaired prometheus.Counter
	CaseReviewUpdates  *prometheus.CounterVec
	ReportsWritten     *prometheus.CounterVec
	CacheLookups       *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		CaseReviewRepaired: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "case_review_status_repaired_total",
			Help:      "Individuals whose invalid case review status was reset by a migration.",
		}),
		CaseReviewUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "case_review_updates_total",
			Help:      "Case review status updates by new status.",
		}, []string{"status"}),
		ReportsWritten: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "case_review_reports_total",
			Help:      "Case review exports by format and result.",
		}, []string{"format", "result"}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by cache name and outcome.",
		}, []string{"cache", "outcome"}),
	}
}

// NewNop returns collectors bound to a private registry, for callers that do
// not expose metrics.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
