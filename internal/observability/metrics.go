package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// chart service.
type Metrics struct {
	ChartsComputed prometheus.Counter
	ChartsFailed   *prometheus.CounterVec // labels: reason={validation,location,timezone,datetime,ephemeris,internal}
	PDFsRendered   prometheus.Counter
	AccessTotal    prometheus.Gauge

	// Per-stage latency of the assembly pipeline.
	StageDuration *prometheus.HistogramVec // labels: stage={geocode,timezone,ephemeris}

	// Geocoding metrics.
	GeocodeRequests *prometheus.CounterVec // labels: outcome={success,error,not_found}
	GeocodeCache    *prometheus.CounterVec // labels: result={hit,miss}

	// 1 when the remote ephemeris API is configured, 0 for the built-in provider.
	RemoteEphemeris prometheus.Gauge
}

// NewMetrics creates and registers all chart metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ChartsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "natal_chart",
			Name:      "charts_computed_total",
			Help:      "Total successfully assembled charts.",
		}),
		ChartsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "natal_chart",
			Name:      "charts_failed_total",
			Help:      "Failed chart requests by failure reason.",
		}, []string{"reason"}),
		PDFsRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "natal_chart",
			Name:      "pdfs_rendered_total",
			Help:      "Total chart PDFs rendered.",
		}),
		AccessTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "natal_chart",
			Name:      "access_total",
			Help:      "Last observed value of the durable access counter.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "natal_chart",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each external assembly stage.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"stage"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "natal_chart",
			Name:      "geocode_requests_total",
			Help:      "Geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "natal_chart",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		RemoteEphemeris: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "natal_chart",
			Name:      "remote_ephemeris_enabled",
			Help:      "1 when the remote ephemeris API is in use, 0 for the built-in provider.",
		}),
	}

	prometheus.MustRegister(
		m.ChartsComputed,
		m.ChartsFailed,
		m.PDFsRendered,
		m.AccessTotal,
		m.StageDuration,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.RemoteEphemeris,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ChartsComputed:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "natal_chart", Name: "charts_computed_total"}),
		ChartsFailed:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "natal_chart", Name: "charts_failed_total"}, []string{"reason"}),
		PDFsRendered:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "natal_chart", Name: "pdfs_rendered_total"}),
		AccessTotal:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "natal_chart", Name: "access_total"}),
		StageDuration:   prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "natal_chart", Name: "stage_duration_seconds"}, []string{"stage"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "natal_chart", Name: "geocode_requests_total"}, []string{"outcome"}),
		GeocodeCache:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "natal_chart", Name: "geocode_cache_total"}, []string{"result"}),
		RemoteEphemeris: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "natal_chart", Name: "remote_ephemeris_enabled"}),
	}
}
