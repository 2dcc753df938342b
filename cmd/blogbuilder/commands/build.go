package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/history"
	"github.com/alex-schaaf/alex-schaaf.github.io/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output    string `short:"o" help:"Override the configured output directory"`
	NoHistory bool   `help:"Skip recording this build in the history database"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	outputDir := cfg.Output.Directory
	if b.Output != "" {
		outputDir = b.Output
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	generator, err := site.NewGenerator(cfg, outputDir)
	if err != nil {
		return err
	}

	report, buildErr := generator.Build(ctx)

	if !b.NoHistory && report != nil {
		recordBuild(ctx, root.HistoryDB, report)
	}

	if buildErr != nil {
		return buildErr
	}

	fmt.Printf("Built %d page(s) from %d post(s) in %s\n",
		report.Pages, report.Posts, report.Duration.Round(timeRounding))
	if len(report.Warnings) > 0 {
		fmt.Printf("%d warning(s); rerun with --verbose for details\n", len(report.Warnings))
	}
	return nil
}

// recordBuild stores the report; history problems never fail a build.
func recordBuild(ctx context.Context, dbPath string, report *site.BuildReport) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		slog.Warn("History directory unavailable", slog.String("error", err.Error()))
		return
	}
	store, err := history.NewStore(dbPath)
	if err != nil {
		slog.Warn("History store unavailable", slog.String("error", err.Error()))
		return
	}
	defer func() { _ = store.Close() }()

	if err := store.Record(ctx, report); err != nil {
		slog.Warn("Failed to record build history", slog.String("error", err.Error()))
	}
}
