package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/publisher/internal/config"
	ferrors "git.home.luguber.info/inful/publisher/internal/foundation/errors"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing configuration file"`
	Output string `short:"o" name:"output" help:"Directory to write publisher.yaml into instead of --config"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	path := root.Config
	if i.Output != "" {
		path = filepath.Join(i.Output, "publisher.yaml")
	}
	if err := config.Init(path, i.Force); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "initialization failed").
			WithContext("path", path).
			Build()
	}
	_, _ = fmt.Fprintf(g.out(), "Wrote configuration to %s\n", path)
	return nil
}
