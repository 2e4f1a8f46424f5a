// Package metrics counts loads, skipped rows and materialized files.
//
// The tool is short-lived, so nothing is served over HTTP. Counters are
// written once per command to a file in the node_exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/JonMunkholm/movies/internal/movie"
)

const namespace = "movies"

// Metrics holds the collectors and the private registry they live in.
type Metrics struct {
	reg *prometheus.Registry

	filesLoaded       *prometheus.CounterVec
	rowsLoaded        prometheus.Counter
	rowsSkipped       *prometheus.CounterVec
	bytesRead         prometheus.Counter
	loadDuration      prometheus.Histogram
	queriesTotal      *prometheus.CounterVec
	filesMaterialized prometheus.Counter
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),

		filesLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_loaded_total",
			Help:      "Movie files loaded, by policy and outcome",
		}, []string{"policy", "outcome"}),

		rowsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_loaded_total",
			Help:      "Rows accepted as records",
		}),

		rowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_skipped_total",
			Help:      "Rows rejected during load",
		}, []string{"reason"}),

		bytesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "read_bytes_total",
			Help:      "Input bytes consumed by loads",
		}),

		loadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Time spent loading a movie file",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),

		queriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Queries answered, by kind",
		}, []string{"kind"}),

		filesMaterialized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_materialized_total",
			Help:      "Per-group output files written",
		}),
	}

	m.reg.MustRegister(
		m.filesLoaded, m.rowsLoaded, m.rowsSkipped, m.bytesRead,
		m.loadDuration, m.queriesTotal, m.filesMaterialized,
	)
	return m
}

// Registry exposes the gatherer, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// ObserveLoad records a finished load. err non-nil counts as a failure.
func (m *Metrics) ObserveLoad(policy string, res movie.Result, took time.Duration, err error) {
	if m == nil {
		return
	}
	m.loadDuration.Observe(took.Seconds())
	if err != nil {
		m.filesLoaded.WithLabelValues(policy, "error").Inc()
		return
	}
	m.filesLoaded.WithLabelValues(policy, "ok").Inc()
	m.rowsLoaded.Add(float64(res.Records.Len()))
	m.bytesRead.Add(float64(res.Bytes))
	for _, n := range res.Skipped {
		m.rowsSkipped.WithLabelValues(string(n.Reason)).Inc()
	}
}

// ObserveQuery counts one answered query of the given kind.
func (m *Metrics) ObserveQuery(kind string) {
	if m == nil {
		return
	}
	m.queriesTotal.WithLabelValues(kind).Inc()
}

// ObserveMaterialized counts written output files.
func (m *Metrics) ObserveMaterialized(files int) {
	if m == nil {
		return
	}
	m.filesMaterialized.Add(float64(files))
}

// WriteFile writes all metrics to path in text exposition format.
// The write goes through a temp file and rename. An empty path is a no-op.
func (m *Metrics) WriteFile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.reg)
}
