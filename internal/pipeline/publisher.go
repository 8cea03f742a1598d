// Package pipeline drives one publish run: it builds the document index once,
// runs the outline, fans out every artifact renderer, copies assets and then
// reports the run to the optional snapshot store, metrics and NATS.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/publisher/internal/config"
	ferrors "git.home.luguber.info/inful/publisher/internal/foundation/errors"
	"git.home.luguber.info/inful/publisher/internal/index"
	ierrors "git.home.luguber.info/inful/publisher/internal/index/errors"
	"git.home.luguber.info/inful/publisher/internal/logfields"
	"git.home.luguber.info/inful/publisher/internal/metrics"
	"git.home.luguber.info/inful/publisher/internal/notify"
	"git.home.luguber.info/inful/publisher/internal/render"
	"git.home.luguber.info/inful/publisher/internal/store"
	"git.home.luguber.info/inful/publisher/internal/templates"
)

// Publisher owns the document index for the lifetime of one run and lends
// read-only views of it to the renderers.
type Publisher struct {
	cfg      *config.Config
	logger   *slog.Logger
	recorder metrics.Recorder
	notifier notify.Notifier
	newRunID func() string
	now      func() time.Time

	idx      *index.Index
	indexErr error
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Publisher) { p.logger = l }
}

// WithRecorder enables metrics collection.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Publisher) { p.recorder = r }
}

// WithNotifier publishes the finished report.
func WithNotifier(n notify.Notifier) Option {
	return func(p *Publisher) { p.notifier = n }
}

// WithRunID overrides run id generation.
func WithRunID(fn func() string) Option {
	return func(p *Publisher) { p.newRunID = fn }
}

// WithClock overrides the time source used for undated feed entries.
func WithClock(now func() time.Time) Option {
	return func(p *Publisher) { p.now = now }
}

// New returns a publisher for a finalized configuration.
func New(cfg *config.Config, opts ...Option) *Publisher {
	p := &Publisher{
		cfg:      cfg,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
		notifier: notify.Noop{},
		newRunID: uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Sanity builds the document index and file tree once. A missing sort key
// under the abort policy leaves a usable file listing and returns the error;
// any other failure leaves no index.
func (p *Publisher) Sanity(ctx context.Context) error {
	if p.idx != nil {
		return p.indexErr
	}
	opts := index.OptionsFromConfig(p.cfg)
	opts.Logger = p.logger
	idx, err := index.Build(ctx, opts)
	if idx == nil {
		if err == nil {
			err = ierrors.ErrIndexNotBuilt
		}
		return ferrors.WrapError(err, ferrors.CategoryIndex, "failed to build document index").
			WithContext("source", p.cfg.SourceDir()).
			Fatal().
			Build()
	}
	p.idx = idx
	if err != nil {
		p.indexErr = ferrors.WrapError(err, ferrors.CategoryIndex, "document index aborted").
			WithContext("policy", string(p.cfg.Output.OnMissingSortKey)).
			Build()
	}
	return p.indexErr
}

// Index returns the index built by Sanity, or nil.
func (p *Publisher) Index() *index.Index { return p.idx }

// Env builds the renderer environment over the current index.
func (p *Publisher) Env() (*render.Env, error) {
	if p.idx == nil {
		return nil, ferrors.WrapError(ierrors.ErrIndexNotBuilt, ferrors.CategoryInternal, "sanity step has not run").Build()
	}
	env := render.NewEnv(p.cfg, p.idx, nil, p.logger)
	engine, err := templates.New(templates.Options{
		Root:   p.cfg.Prefix,
		Layout: p.cfg.Layout,
		Link:   env.Resolver.ResolveOutputLink,
		Now:    p.now,
	})
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryTemplate, "failed to load layout").
			WithContext("layout", p.cfg.Layout).
			Fatal().
			Build()
	}
	env.Engine = engine
	env.Recorder = p.recorder
	env.IndexAborted = p.indexErr != nil
	return env, nil
}

// Run publishes every configured artifact. Unit failures are recorded in the
// report; only a failed index build or an unusable layout return an error.
func (p *Publisher) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := newReport(p.newRunID(), start)
	log := p.logger.With(logfields.RunID(report.RunID))

	if err := p.Sanity(ctx); err != nil && p.idx == nil {
		p.recorder.IncRunOutcome(metrics.OutcomeFailed)
		return nil, err
	} else if err != nil {
		log.Error("Ordered artifacts will be skipped", logfields.Error(err))
		report.IndexError = err.Error()
	}
	report.Files = len(p.idx.Files())
	report.Documents = p.idx.Len()
	for _, s := range p.idx.Skipped() {
		report.Skipped = append(report.Skipped, s.Path)
	}

	env, err := p.Env()
	if err != nil {
		p.recorder.IncRunOutcome(metrics.OutcomeFailed)
		return nil, err
	}
	env.Logger = log

	plan := render.PlanFor(p.cfg)
	if plan.Outline != nil {
		report.addResult(render.Run(ctx, plan.Outline, env))
	}
	for _, res := range p.fanOut(ctx, env, plan.Artifacts) {
		report.addResult(res)
	}
	report.addResult(render.Run(ctx, plan.Assets, env))

	report.warn(p.snapshot(ctx, report.RunID))
	report.finish(ctx.Err() != nil)

	p.recorder.SetIndexedDocuments(report.Documents)
	p.recorder.SetSkippedDocuments(len(report.Skipped))
	p.recorder.ObserveRunDuration(report.End.Sub(report.Start))
	p.recorder.IncRunOutcome(report.Outcome)

	if err := p.notifier.Notify(ctx, report.RunID, report); err != nil {
		nerr := ferrors.WrapError(err, ferrors.CategoryNotify, "failed to publish run report").Build()
		log.Warn("Run notification failed", logfields.Error(nerr))
		report.warn(nerr)
	}

	log.Info("Publish finished", slog.String("summary", report.Summary()))
	return report, nil
}

// fanOut runs independent renderers concurrently. Results keep plan order.
func (p *Publisher) fanOut(ctx context.Context, env *render.Env, renderers []render.Renderer) []render.Result {
	results := make([]render.Result, len(renderers))
	g, gctx := errgroup.WithContext(ctx)
	for i, r := range renderers {
		g.Go(func() error {
			results[i] = render.Run(gctx, r, env)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// snapshot persists the index when a store is configured.
func (p *Publisher) snapshot(ctx context.Context, runID string) error {
	if p.cfg.Store == "" {
		return nil
	}
	if !p.idx.Built() {
		p.logger.Debug("Index snapshot skipped; no documents were indexed", logfields.Path(p.cfg.Store))
		return nil
	}
	s, err := store.Open(p.cfg.Abs(p.cfg.Store))
	if err == nil {
		err = s.Snapshot(ctx, runID, p.idx)
		err = errors.Join(err, s.Close())
	}
	if err != nil {
		serr := ferrors.WrapError(err, ferrors.CategoryStore, "failed to write index snapshot").
			WithContext("store", p.cfg.Store).
			Build()
		p.logger.Warn("Index snapshot failed", logfields.Error(serr))
		return serr
	}
	p.logger.Debug("Index snapshot written", logfields.Path(p.cfg.Store), logfields.Count(p.idx.Len()))
	return nil
}
