package commands

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/publisher/internal/config"
	ferrors "git.home.luguber.info/inful/publisher/internal/foundation/errors"
)

// LogLevelEnv overrides the configured log level when --verbose is not given.
const LogLevelEnv = "PUBLISHER_LOG_LEVEL"

// Global is shared state bound into every command.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

func (g *Global) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"publisher.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Publish PublishCmd `cmd:"" default:"1" help:"Index the source tree and render every configured artifact"`
	Outline OutlineCmd `cmd:"" help:"Regenerate SUMMARY.md in the source directory"`
	Index   IndexCmd   `cmd:"" help:"Print the document index without rendering"`
	Check   CheckCmd   `cmd:"" help:"Report output path collisions and dangling links"`
	Init    InitCmd    `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(newLogger(c.level(config.LogLevelInfo), config.LogFormatText, os.Stderr))
	return nil
}

// level resolves the effective level: --verbose, then the environment, then fallback.
func (c *CLI) level(fallback config.LogLevel) slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	if raw := strings.TrimSpace(os.Getenv(LogLevelEnv)); raw != "" {
		return config.NormalizeLogLevel(raw).SlogLevel()
	}
	return fallback.SlogLevel()
}

func newLogger(level slog.Level, format config.LogFormat, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// loadConfig loads the configuration named by --config and applies its
// logging section to the global logger.
func loadConfig(g *Global, root *CLI) (*config.Config, error) {
	cfg, res, err := config.Load(root.Config)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to load configuration").
			WithContext("path", root.Config).
			Fatal().
			Build()
	}
	if g.Logger == nil || g.Logger == slog.Default() {
		g.Logger = newLogger(root.level(cfg.Logging.Level), cfg.Logging.Format, os.Stderr)
		slog.SetDefault(g.Logger)
	}
	if res != nil {
		for _, w := range res.Warnings {
			g.logger().Warn("Configuration normalized", slog.String("detail", w))
		}
	}
	return cfg, nil
}
