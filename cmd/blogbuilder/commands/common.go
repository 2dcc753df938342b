// Package commands holds the CLI subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/config"
)

// timeRounding trims durations for human-facing output.
const timeRounding = time.Millisecond

// Global carries state shared across subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI is the root command definition with global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path" default:"blog.yaml"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	HistoryDB string           `help:"Path of the build history database" default:".blogbuilder/history.db"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Build the site into the output directory"`
	Init    InitCmd    `cmd:"" help:"Initialize a new blog project"`
	Preview PreviewCmd `cmd:"" help:"Serve the site locally and rebuild on change"`
	Lint    LintCmd    `cmd:"" help:"Check the generated site for broken links"`
	History HistoryCmd `cmd:"" help:"List recorded builds"`
}

// AfterApply runs after flag parsing; sets up logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func loadConfig(root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
