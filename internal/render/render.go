// Package render turns the document index into output artifacts. Each
// Renderer reads the shared index, never mutates it, and reports its own
// failures in a Result instead of aborting its siblings.
package render

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"git.home.luguber.info/inful/publisher/internal/config"
	"git.home.luguber.info/inful/publisher/internal/index"
	"git.home.luguber.info/inful/publisher/internal/logfields"
	"git.home.luguber.info/inful/publisher/internal/markdown"
	"git.home.luguber.info/inful/publisher/internal/metrics"
	"git.home.luguber.info/inful/publisher/internal/paths"
	"git.home.luguber.info/inful/publisher/internal/templates"
)

// PublisherKey is the template variable exposing pipeline internals.
const PublisherKey = "_publisher"

// Renderer produces one kind of artifact.
type Renderer interface {
	Name() string
	Render(ctx context.Context, env *Env) Result
}

// Env is the read-only state shared by all renderers of one run.
type Env struct {
	Config    *config.Config
	Index     *index.Index
	Engine    *templates.Engine
	Converter *markdown.Converter
	Resolver  *paths.Resolver
	Dirs      *paths.DirCache
	Recorder  metrics.Recorder
	Logger    *slog.Logger
	// IndexAborted is set when the index build stopped on a missing sort key;
	// renderers that need ordered documents are skipped.
	IndexAborted bool
	// Concurrency bounds parallel writes within one renderer.
	Concurrency int

	contentMu sync.Mutex
	content   map[string]string
}

// NewEnv wires an Env from its collaborators, defaulting the optional ones.
func NewEnv(cfg *config.Config, idx *index.Index, engine *templates.Engine, logger *slog.Logger) *Env {
	if logger == nil {
		logger = slog.Default()
	}
	return &Env{
		Config:      cfg,
		Index:       idx,
		Engine:      engine,
		Converter:   markdown.NewConverter(),
		Resolver:    paths.NewResolver(cfg),
		Dirs:        paths.NewDirCache(),
		Recorder:    metrics.NoopRecorder{},
		Logger:      logger,
		Concurrency: cfg.Concurrency,
	}
}

// Publisher returns the _publisher object handed to every template: the
// flat file list, the document index and the resolved configuration.
func (e *Env) Publisher() map[string]any {
	return map[string]any{
		"files":  e.Index.Files(),
		"store":  e.Index,
		"config": e.Config,
	}
}

// globals returns a fresh copy of the configured template globals.
func (e *Env) globals() map[string]any {
	out := make(map[string]any, len(e.Config.Globals)+4)
	maps.Copy(out, e.Config.Globals)
	return out
}

func (e *Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

func (e *Env) recorder() metrics.Recorder {
	if e.Recorder == nil {
		return metrics.NoopRecorder{}
	}
	return e.Recorder
}

// Artifact is one written output file.
type Artifact struct {
	Template string `json:"template,omitempty"`
	// Path is relative to the destination directory.
	Path  string `json:"path"`
	Bytes int64  `json:"bytes"`
}

// Result aggregates one renderer's outcome.
type Result struct {
	Renderer string
	Written  []Artifact
	Failures []error
	// Skipped is set when the renderer did not run at all.
	Skipped    bool
	SkipReason string
	Duration   time.Duration
}

// Err joins every unit failure, or returns nil.
func (r Result) Err() error { return errors.Join(r.Failures...) }

// Bytes sums the size of the written artifacts.
func (r Result) Bytes() int64 {
	var n int64
	for _, a := range r.Written {
		n += a.Bytes
	}
	return n
}

func (r *Result) fail(err error) {
	if err != nil {
		r.Failures = append(r.Failures, err)
	}
}

func (r *Result) merge(other Result) {
	r.Written = append(r.Written, other.Written...)
	r.Failures = append(r.Failures, other.Failures...)
}

func (r *Result) sort() {
	slices.SortFunc(r.Written, func(a, b Artifact) int {
		switch {
		case a.Path < b.Path:
			return -1
		case a.Path > b.Path:
			return 1
		}
		return 0
	})
}

func skipped(name, reason string) Result {
	return Result{Renderer: name, Skipped: true, SkipReason: reason}
}

// Run executes r, timing it and recording metrics and a summary log line.
func Run(ctx context.Context, r Renderer, env *Env) Result {
	start := time.Now()
	res := r.Render(ctx, env)
	res.Renderer = r.Name()
	res.Duration = time.Since(start)
	res.sort()

	rec := env.recorder()
	rec.ObserveRendererDuration(res.Renderer, res.Duration)
	rec.AddArtifacts(res.Renderer, len(res.Written), res.Bytes())
	rec.IncRendererResult(res.Renderer, resultLabel(ctx, res))

	log := env.logger().With(logfields.Renderer(res.Renderer))
	if res.Skipped {
		log.Warn("Renderer skipped", slog.String("reason", res.SkipReason))
		return res
	}
	log.Info("Renderer finished",
		slog.Int("written", len(res.Written)),
		slog.Int("failed", len(res.Failures)),
		logfields.Duration(res.Duration))
	return res
}

func resultLabel(ctx context.Context, res Result) metrics.ResultLabel {
	switch {
	case ctx.Err() != nil:
		return metrics.ResultCanceled
	case res.Skipped:
		return metrics.ResultSkipped
	case len(res.Failures) > 0 && len(res.Written) == 0:
		return metrics.ResultFailed
	case len(res.Failures) > 0:
		return metrics.ResultWarning
	}
	return metrics.ResultSuccess
}
