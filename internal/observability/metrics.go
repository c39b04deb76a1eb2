// Package observability exposes prometheus metrics for comparison runs and
// the HTTP surface.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/HSchlagi/bess-simulation-sub000/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	analysesTotal     *prometheus.CounterVec
	analysisDuration  prometheus.Histogram
	useCasesEvaluated prometheus.Counter
	warningsTotal     *prometheus.CounterVec
	bestROI           prometheus.Gauge
}

// NewMetrics registers the collectors on a private registry so several
// instances can coexist in one process.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		analysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bess_analyses_total",
			Help: "Comparison runs by outcome.",
		}, []string{"outcome"}),
		analysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bess_analysis_duration_seconds",
			Help:    "Histogram of comparison run durations.",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5},
		}),
		useCasesEvaluated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bess_use_cases_evaluated_total",
			Help: "Total use cases projected across all runs.",
		}),
		warningsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bess_warnings_total",
			Help: "Input corrections reported by comparison runs, by warning code.",
		}, []string{"code"}),
		bestROI: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bess_last_best_roi_percent",
			Help: "Cumulative ROI of the best use case of the last run.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		m.httpRequestsTotal,
		m.httpDuration,
		m.analysesTotal,
		m.analysisDuration,
		m.useCasesEvaluated,
		m.warningsTotal,
		m.bestROI,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveHTTP(route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}

// ObserveAnalysis records one finished comparison run.
func (m *Metrics) ObserveAnalysis(d time.Duration, useCases int, bestROI float64, warnings []model.Warning) {
	if m == nil {
		return
	}
	m.analysesTotal.WithLabelValues("ok").Inc()
	m.analysisDuration.Observe(d.Seconds())
	m.useCasesEvaluated.Add(float64(useCases))
	m.bestROI.Set(bestROI)
	for _, w := range warnings {
		m.warningsTotal.WithLabelValues(string(w.Code)).Inc()
	}
}

func (m *Metrics) AnalysisFailed() {
	if m == nil {
		return
	}
	m.analysesTotal.WithLabelValues("error").Inc()
}
