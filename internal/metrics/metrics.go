// Package metrics holds the prometheus collectors exported by the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultBuckets provides a common set of histogram buckets in seconds.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Outcome labels shared by the auth counters.
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultError    = "error"
)

//nolint: gochecknoglobals
var (
	// Signups counts signup attempts by result.
	Signups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lamenar",
		Name:      "signups_total",
		Help:      "Signup attempts by result.",
	}, []string{"result"})

	// Logins counts login attempts by result.
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lamenar",
		Name:      "logins_total",
		Help:      "Login attempts by result.",
	}, []string{"result"})

	// CompanyNameFallbacks counts signups whose company name could not be split into words.
	CompanyNameFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lamenar",
		Name:      "company_name_single_word_total",
		Help:      "Resolved company display names that are a single word.",
	})

	// HTTPRequestDuration observes request latency by method, route pattern and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lamenar",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   DefaultBuckets,
	}, []string{"method", "route", "code"})
)
