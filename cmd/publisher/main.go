package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/publisher/cmd/publisher/commands"
	ferrors "git.home.luguber.info/inful/publisher/internal/foundation/errors"
	"git.home.luguber.info/inful/publisher/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := &commands.Global{Out: os.Stdout}

	ctx := kong.Parse(cli,
		kong.Name("publisher"),
		kong.Description("Render a Markdown tree into a static site through text templates."),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)
	global.Logger = slog.Default()

	if err := ctx.Run(global, cli); err != nil {
		os.Exit(ferrors.NewCLIErrorAdapter(cli.Verbose, global.Logger).Report(os.Stderr, err))
	}
}
