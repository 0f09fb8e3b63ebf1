package commands

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docrender/internal/config"
)

// LogLevelEnv overrides the log level chosen by --verbose.
const LogLevelEnv = "DOCRENDER_LOG_LEVEL"

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docrender.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build      BuildCmd      `cmd:"" help:"Render the documentation site"`
	Watch      WatchCmd      `cmd:"" help:"Render the site and re-render whenever its inputs change"`
	SortTopics SortTopicsCmd `cmd:"" name:"sort-topics" help:"Print topics in their configured order"`
	Init       InitCmd       `cmd:"" help:"Initialize a new configuration file"`
	Info       VersionCmd    `cmd:"" name:"version" help:"Print version information"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(c.Verbose)}))
	slog.SetDefault(logger)
	return nil
}

// parseLogLevel returns debug for verbose runs and info otherwise, unless
// DOCRENDER_LOG_LEVEL names a level.
func parseLogLevel(verbose bool) slog.Level {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv(LogLevelEnv))) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return level
}

// loadConfig loads the configuration named by the global --config flag.
func loadConfig(root *CLI) (*config.Config, error) {
	return config.Load(root.Config)
}
