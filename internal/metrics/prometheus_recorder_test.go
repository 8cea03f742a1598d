package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveRendererDuration("list", 150*time.Millisecond)
	pr.ObserveRunDuration(500 * time.Millisecond)
	pr.IncRendererResult("list", ResultSuccess)
	pr.IncRunOutcome(OutcomeSuccess)
	pr.AddArtifacts("list", 3, 2048)
	pr.SetIndexedDocuments(12)
	pr.SetSkippedDocuments(1)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)

	byName := map[string]*dto.MetricFamily{}
	for _, mf := range mfs {
		byName[mf.GetName()] = mf
	}
	require.InDelta(t, 3, byName["publisher_artifacts_written_total"].GetMetric()[0].GetCounter().GetValue(), 0)
	require.InDelta(t, 2048, byName["publisher_artifact_bytes_total"].GetMetric()[0].GetCounter().GetValue(), 0)
	require.InDelta(t, 12, byName["publisher_indexed_documents"].GetMetric()[0].GetGauge().GetValue(), 0)
	require.InDelta(t, 1, byName["publisher_run_outcomes_total"].GetMetric()[0].GetCounter().GetValue(), 0)
}

func TestPrometheusRecorderNilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	require.NotPanics(t, func() {
		pr.ObserveRendererDuration("view", time.Second)
		pr.IncRendererResult("view", ResultFailed)
		pr.AddArtifacts("view", 1, 1)
		pr.SetIndexedDocuments(1)
	})
}

func TestNoopRecorderSatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	require.NotPanics(t, func() {
		r.IncRunOutcome(OutcomeFailed)
		r.AddArtifacts("feed", 1, 10)
	})
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncRunOutcome(OutcomeWarning)

	path := filepath.Join(t.TempDir(), "publisher.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), `publisher_run_outcomes_total{outcome="warning"} 1`))

	require.Error(t, WriteTextfile("", reg))
}
