package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/publisher/internal/metrics"
	"git.home.luguber.info/inful/publisher/internal/render"
)

// ReportSchemaVersion is bumped on incompatible changes of the JSON report.
const ReportSchemaVersion = 1

// RendererReport summarizes one renderer of a run.
type RendererReport struct {
	Name       string            `json:"name"`
	Written    []render.Artifact `json:"written"`
	Bytes      int64             `json:"bytes"`
	Failures   []string          `json:"failures,omitempty"`
	Skipped    bool              `json:"skipped,omitempty"`
	SkipReason string            `json:"skip_reason,omitempty"`
	DurationMS int64             `json:"duration_ms"`
}

// Report is the outcome of one publish run.
type Report struct {
	SchemaVersion int                  `json:"schema_version"`
	RunID         string               `json:"run_id"`
	Start         time.Time            `json:"start"`
	End           time.Time            `json:"end"`
	Files         int                  `json:"files"`
	Documents     int                  `json:"documents"`
	Skipped       []string             `json:"skipped_documents,omitempty"`
	IndexError    string               `json:"index_error,omitempty"`
	Renderers     []RendererReport     `json:"renderers"`
	Warnings      []string             `json:"warnings,omitempty"`
	Outcome       metrics.OutcomeLabel `json:"outcome"`
}

func newReport(runID string, start time.Time) *Report {
	return &Report{SchemaVersion: ReportSchemaVersion, RunID: runID, Start: start}
}

func (r *Report) addResult(res render.Result) {
	rr := RendererReport{
		Name:       res.Renderer,
		Written:    res.Written,
		Bytes:      res.Bytes(),
		Skipped:    res.Skipped,
		SkipReason: res.SkipReason,
		DurationMS: res.Duration.Milliseconds(),
	}
	if rr.Written == nil {
		rr.Written = []render.Artifact{}
	}
	for _, err := range res.Failures {
		rr.Failures = append(rr.Failures, err.Error())
	}
	r.Renderers = append(r.Renderers, rr)
}

func (r *Report) warn(err error) {
	if err != nil {
		r.Warnings = append(r.Warnings, err.Error())
	}
}

// Written counts artifacts written by all renderers.
func (r *Report) Written() int {
	n := 0
	for _, rr := range r.Renderers {
		n += len(rr.Written)
	}
	return n
}

// Failures counts failed units of work across renderers.
func (r *Report) Failures() int {
	n := 0
	for _, rr := range r.Renderers {
		n += len(rr.Failures)
	}
	return n
}

// Renderer returns the report of the named renderer.
func (r *Report) Renderer(name string) (RendererReport, bool) {
	for _, rr := range r.Renderers {
		if rr.Name == name {
			return rr, true
		}
	}
	return RendererReport{}, false
}

func (r *Report) finish(canceled bool) {
	r.End = time.Now()
	switch {
	case canceled:
		r.Outcome = metrics.OutcomeCanceled
	case r.Failures() > 0 && r.Written() == 0:
		r.Outcome = metrics.OutcomeFailed
	case r.Failures() > 0 || r.IndexError != "" || len(r.Skipped) > 0 || len(r.Warnings) > 0:
		r.Outcome = metrics.OutcomeWarning
	default:
		r.Outcome = metrics.OutcomeSuccess
	}
}

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("run=%s documents=%d skipped=%d written=%d failures=%d duration=%s outcome=%s",
		r.RunID, r.Documents, len(r.Skipped), r.Written(), r.Failures(),
		r.End.Sub(r.Start).Truncate(time.Millisecond), r.Outcome)
}

// Persist writes the report as indented JSON to path via a temporary file and rename.
func (r *Report) Persist(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("ensure report directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil { //nolint:gosec // report is not secret
		return fmt.Errorf("write temp report json: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("atomic rename report: %w", err)
	}
	return nil
}
