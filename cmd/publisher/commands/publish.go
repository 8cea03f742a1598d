package commands

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	ferrors "git.home.luguber.info/inful/publisher/internal/foundation/errors"
	"git.home.luguber.info/inful/publisher/internal/logfields"
	"git.home.luguber.info/inful/publisher/internal/metrics"
	"git.home.luguber.info/inful/publisher/internal/notify"
	"git.home.luguber.info/inful/publisher/internal/pipeline"
)

// PublishCmd implements the 'publish' command.
type PublishCmd struct {
	Root        string `help:"Override the configured prefix all paths are relative to" type:"path"`
	Strict      bool   `help:"Exit non-zero when any artifact failed to render or write"`
	Report      string `help:"Write the JSON run report to this path" type:"path"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics in text format to this path after the run" type:"path"`
}

func (p *PublishCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if p.Root != "" {
		cfg.Prefix = p.Root
	}
	logger := g.logger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := []pipeline.Option{pipeline.WithLogger(logger)}
	var reg *prom.Registry
	if p.MetricsFile != "" {
		reg = prom.NewRegistry()
		opts = append(opts, pipeline.WithRecorder(metrics.NewPrometheusRecorder(reg)))
	}
	notifier, err := notify.New(cfg.Notify, logger)
	if err != nil {
		logger.Warn("Run notifications disabled", logfields.Error(err))
		notifier = notify.Noop{}
	}
	defer func() { _ = notifier.Close() }()
	opts = append(opts, pipeline.WithNotifier(notifier))

	report, err := pipeline.New(cfg, opts...).Run(ctx)
	if err != nil {
		return err
	}

	if p.Report != "" {
		if err := report.Persist(p.Report); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write run report").
				WithContext("path", p.Report).
				Build()
		}
	}
	if reg != nil {
		if err := metrics.WriteTextfile(p.MetricsFile, reg); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write metrics").
				WithContext("path", p.MetricsFile).
				Build()
		}
	}

	_, _ = fmt.Fprintln(g.out(), report.Summary())
	for _, r := range report.Renderers {
		for _, f := range r.Failures {
			_, _ = fmt.Fprintf(g.out(), "  %s: %s\n", r.Name, f)
		}
	}

	switch {
	case report.Outcome == metrics.OutcomeCanceled:
		return ferrors.RenderError("publish was interrupted").
			WithContext("dest", filepath.ToSlash(cfg.Dest)).
			Fatal().
			Build()
	case p.Strict && report.Failures() > 0:
		return ferrors.RenderError("publish finished with failed artifacts in strict mode").
			WithContext("failures", report.Failures()).
			WithContext("outcome", string(report.Outcome)).
			Build()
	}
	return nil
}
