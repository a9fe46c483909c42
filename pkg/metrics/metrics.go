// Package metrics defines the Prometheus metric collectors for the index
// writer and corpus replay, and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the module.
type Metrics struct {
	DocsAddedTotal     prometheus.Counter
	FieldsIndexedTotal prometheus.Counter
	CommitsTotal       *prometheus.CounterVec
	CommitDuration     prometheus.Histogram
	SegmentBytes       prometheus.Histogram
	ReplayDocsTotal    *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	m := &Metrics{
		DocsAddedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "indexkit_docs_added_total",
				Help: "Total documents buffered into the writer.",
			},
		),
		FieldsIndexedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "indexkit_fields_indexed_total",
				Help: "Total indexed fields across all added documents.",
			},
		),
		CommitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "indexkit_commits_total",
				Help: "Total commit operations by status.",
			},
			[]string{"status"},
		),
		CommitDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "indexkit_commit_duration_seconds",
				Help:    "Commit latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
		),
		SegmentBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "indexkit_segment_bytes",
				Help:    "Size of committed segment files in bytes.",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
			},
		),
		ReplayDocsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "indexkit_replay_docs_total",
				Help: "Total documents replayed from corpus sources by source type.",
			},
			[]string{"source"},
		),
	}

	prometheus.MustRegister(
		m.DocsAddedTotal,
		m.FieldsIndexedTotal,
		m.CommitsTotal,
		m.CommitDuration,
		m.SegmentBytes,
		m.ReplayDocsTotal,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
