package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	GeometryEditsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_geometry_edits_total",
		Help: "Geometry solver calls by edited field and outcome",
	}, []string{"field", "outcome"})
	MatchRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_match_requests_total",
		Help: "Closest-location queries by outcome",
	}, []string{"outcome"})
	MatchConfidence = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "bridge_match_confidence",
		Help:    "Confidence of returned closest-location matches",
		Buckets: []float64{10, 20, 40, 60, 80, 90, 95, 100},
	})
	CatalogLoadDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bridge_catalog_load_duration_ms",
		Help:    "Catalog snapshot load duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"source"})
	ReportsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bridge_reports_total",
		Help: "Design-basis PDF reports generated",
	})
)

func init() {
	prometheus.MustRegister(GeometryEditsTotal)
	prometheus.MustRegister(MatchRequestsTotal)
	prometheus.MustRegister(MatchConfidence)
	prometheus.MustRegister(CatalogLoadDurationMs)
	prometheus.MustRegister(ReportsTotal)
}

// Handler exposes the registered collectors for scraping.
func Handler() http.Handler { return promhttp.Handler() }
