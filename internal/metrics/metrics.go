// Package metrics defines the Prometheus collectors for the autocomplete
// service and exposes an optional HTTP scrape endpoint.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	SearchesTotal       *prometheus.CounterVec
	SearchDuration      *prometheus.HistogramVec
	SuggestionsReturned prometheus.Histogram
	ReloadsTotal        *prometheus.CounterVec
	Entries             *prometheus.GaugeVec
}

// New creates all collectors and registers them with reg. Pass
// prometheus.DefaultRegisterer outside of tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SearchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "autocomplete_searches_total",
				Help: "Total prefix searches served, by category.",
			},
			[]string{"category"},
		),
		SearchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "autocomplete_search_duration_seconds",
				Help:    "Prefix search latency in seconds.",
				Buckets: []float64{0.000005, 0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
			},
			[]string{"category"},
		),
		SuggestionsReturned: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "autocomplete_suggestions_returned",
				Help:    "Number of suggestions returned per search.",
				Buckets: []float64{0, 1, 5, 10, 15, 25, 50},
			},
		),
		ReloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "autocomplete_reloads_total",
				Help: "Reload attempts by category and outcome (completed, failed, rejected).",
			},
			[]string{"category", "outcome"},
		),
		Entries: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "autocomplete_entries",
				Help: "Live entries in the index, by category.",
			},
			[]string{"category"},
		),
	}
	reg.MustRegister(
		m.SearchesTotal,
		m.SearchDuration,
		m.SuggestionsReturned,
		m.ReloadsTotal,
		m.Entries,
	)
	return m
}

// StartServer serves /metrics on addr in the background and returns a
// shutdown func.
func StartServer(addr string) func(context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("metrics listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("metrics server: %v", err)
		}
	}()

	return server.Shutdown
}
