package metrics

import "time"

// ResultLabel enumerates renderer result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultWarning  ResultLabel = "warning"
	ResultFailed   ResultLabel = "failed"
	ResultSkipped  ResultLabel = "skipped"
	ResultCanceled ResultLabel = "canceled"
)

// OutcomeLabel is the final status of a publish run.
type OutcomeLabel string

const (
	OutcomeSuccess  OutcomeLabel = "success"
	OutcomeWarning  OutcomeLabel = "warning"
	OutcomeFailed   OutcomeLabel = "failed"
	OutcomeCanceled OutcomeLabel = "canceled"
)

// Recorder defines observability hooks for publish runs. All methods must be
// safe to call concurrently from renderer goroutines.
type Recorder interface {
	ObserveRendererDuration(renderer string, d time.Duration)
	ObserveRunDuration(d time.Duration)
	IncRendererResult(renderer string, result ResultLabel)
	IncRunOutcome(outcome OutcomeLabel)
	AddArtifacts(renderer string, n int, bytes int64)
	SetIndexedDocuments(n int)
	SetSkippedDocuments(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRendererDuration(string, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)              {}
func (NoopRecorder) IncRendererResult(string, ResultLabel)         {}
func (NoopRecorder) IncRunOutcome(OutcomeLabel)                    {}
func (NoopRecorder) AddArtifacts(string, int, int64)               {}
func (NoopRecorder) SetIndexedDocuments(int)                       {}
func (NoopRecorder) SetSkippedDocuments(int)                       {}
