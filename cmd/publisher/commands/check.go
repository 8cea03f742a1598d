package commands

import (
	"context"
	"fmt"

	ferrors "git.home.luguber.info/inful/publisher/internal/foundation/errors"
	"git.home.luguber.info/inful/publisher/internal/pipeline"
	"git.home.luguber.info/inful/publisher/internal/render"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct{}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	rep, err := pipeline.New(cfg, pipeline.WithLogger(g.logger())).Check(context.Background())
	if err != nil {
		return err
	}

	out := g.out()
	_, _ = fmt.Fprintf(out, "%d planned writes\n", len(rep.Targets))
	for _, p := range render.SortedPaths(rep.Collisions) {
		_, _ = fmt.Fprintf(out, "collision %s:\n", p)
		for _, t := range rep.Collisions[p] {
			_, _ = fmt.Fprintf(out, "  %s %s\n", t.Renderer, t.Template)
		}
	}
	for _, d := range rep.Dangling {
		_, _ = fmt.Fprintf(out, "dangling link %s -> %s\n", d.Document, d.Target)
	}
	if rep.IndexError != "" {
		_, _ = fmt.Fprintf(out, "index: %s\n", rep.IndexError)
	}
	if !rep.OK() {
		return ferrors.ValidationError("check found problems").
			WithContext("collisions", len(rep.Collisions)).
			WithContext("dangling_links", len(rep.Dangling)).
			Build()
	}
	_, _ = fmt.Fprintln(out, "ok")
	return nil
}
