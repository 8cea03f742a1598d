package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/publisher/internal/pipeline"
	"git.home.luguber.info/inful/publisher/internal/render"
)

// OutlineCmd implements the 'outline' command.
type OutlineCmd struct{}

func (o *OutlineCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	ctx := context.Background()
	pub := pipeline.New(cfg, pipeline.WithLogger(g.logger()))
	if err := pub.Sanity(ctx); err != nil && pub.Index() == nil {
		return err
	}
	env, err := pub.Env()
	if err != nil {
		return err
	}
	res := render.Run(ctx, render.NewOutlineRenderer(), env)
	if err := res.Err(); err != nil {
		return err
	}
	for _, a := range res.Written {
		_, _ = fmt.Fprintf(g.out(), "Wrote %s\n", a.Path)
	}
	return nil
}
