// Package metrics exposes Prometheus collectors for the dataset load, the
// dashboard pipeline and the HTTP layer.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"superstore/internal/core"
)

const namespace = "superstore"

// Result labels.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultEmpty    = "empty"
	ResultError    = "error"
)

// Metrics holds every collector of the service.
type Metrics struct {
	registry *prometheus.Registry

	loads        *prometheus.CounterVec
	loadDuration prometheus.Gauge
	rowsRead     prometheus.Gauge
	rowsDropped  prometheus.Gauge
	rowsKept     prometheus.Gauge

	builds *prometheus.CounterVec

	httpDuration *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "loads_total",
			Help:      "Dataset loads by result.",
		}, []string{"result"}),
		loadDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "load_duration_seconds",
			Help:      "Duration of the last dataset load.",
		}),
		rowsRead: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "rows_read",
			Help:      "Data rows read from the source.",
		}),
		rowsDropped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "rows_dropped",
			Help:      "Rows dropped because the order date could not be parsed.",
		}),
		rowsKept: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "rows_kept",
			Help:      "Rows in the loaded table.",
		}),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "builds_total",
			Help:      "Dashboard pipeline runs by result.",
		}, []string{"result"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(m.loads, m.loadDuration, m.rowsRead, m.rowsDropped, m.rowsKept, m.builds, m.httpDuration)
	return m
}

// ObserveLoad records a dataset load. It satisfies dataset.Observer.
func (m *Metrics) ObserveLoad(report core.LoadReport, d time.Duration, err error) {
	m.loads.WithLabelValues(loadResult(err)).Inc()
	m.loadDuration.Set(d.Seconds())
	m.rowsRead.Set(float64(report.RowsRead))
	m.rowsDropped.Set(float64(report.RowsDropped))
	if err == nil {
		m.rowsKept.Set(float64(report.RowsRead - report.RowsDropped))
	} else {
		m.rowsKept.Set(0)
	}
}

// ObserveBuild records one dashboard pipeline run.
func (m *Metrics) ObserveBuild(err error) {
	result := ResultOK
	switch {
	case err == nil:
	case errors.Is(err, core.ErrEmptyFilterResult):
		result = ResultEmpty
	case errors.Is(err, core.ErrSourceNotFound):
		result = ResultNotFound
	default:
		result = ResultError
	}
	m.builds.WithLabelValues(result).Inc()
}

// ObserveHTTP records a served request. route is the matched pattern, not
// the raw path.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func loadResult(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, core.ErrSourceNotFound):
		return ResultNotFound
	default:
		return ResultError
	}
}
