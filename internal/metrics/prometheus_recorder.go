package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "publisher"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once             sync.Once
	rendererDuration *prom.HistogramVec
	runDuration      prom.Histogram
	rendererResults  *prom.CounterVec
	runOutcome       *prom.CounterVec
	artifacts        *prom.CounterVec
	artifactBytes    *prom.CounterVec
	indexed          prom.Gauge
	skipped          prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.rendererDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "renderer_duration_seconds",
			Help:      "Duration of individual artifact renderers",
			Buckets:   prom.DefBuckets,
		}, []string{"renderer"})
		pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Total publish run duration",
			Buckets:   prom.DefBuckets,
		})
		pr.rendererResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "renderer_results_total",
			Help:      "Renderer result counts by outcome",
		}, []string{"renderer", "result"})
		pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcomes_total",
			Help:      "Publish runs by final status",
		}, []string{"outcome"})
		pr.artifacts = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_written_total",
			Help:      "Artifacts written per renderer",
		}, []string{"renderer"})
		pr.artifactBytes = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "artifact_bytes_total",
			Help:      "Bytes written per renderer",
		}, []string{"renderer"})
		pr.indexed = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "indexed_documents",
			Help:      "Documents held by the index in the last run",
		})
		pr.skipped = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "skipped_documents",
			Help:      "Documents left out of the index in the last run",
		})
		reg.MustRegister(pr.rendererDuration, pr.runDuration, pr.rendererResults, pr.runOutcome,
			pr.artifacts, pr.artifactBytes, pr.indexed, pr.skipped)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveRendererDuration(renderer string, d time.Duration) {
	if p == nil || p.rendererDuration == nil {
		return
	}
	p.rendererDuration.WithLabelValues(renderer).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRendererResult(renderer string, result ResultLabel) {
	if p == nil || p.rendererResults == nil {
		return
	}
	p.rendererResults.WithLabelValues(renderer, string(result)).Inc()
}

func (p *PrometheusRecorder) IncRunOutcome(outcome OutcomeLabel) {
	if p == nil || p.runOutcome == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) AddArtifacts(renderer string, n int, bytes int64) {
	if p == nil || p.artifacts == nil {
		return
	}
	p.artifacts.WithLabelValues(renderer).Add(float64(n))
	p.artifactBytes.WithLabelValues(renderer).Add(float64(bytes))
}

func (p *PrometheusRecorder) SetIndexedDocuments(n int) {
	if p == nil || p.indexed == nil {
		return
	}
	p.indexed.Set(float64(n))
}

func (p *PrometheusRecorder) SetSkippedDocuments(n int) {
	if p == nil || p.skipped == nil {
		return
	}
	p.skipped.Set(float64(n))
}
