// Package site orchestrates the build: content loading, Markdown
// rendering, layout application, listing pages, asset bundling, and
// output pruning, run as an ordered stage pipeline.
package site

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/assets"
	"github.com/alex-schaaf/alex-schaaf.github.io/internal/config"
	"github.com/alex-schaaf/alex-schaaf.github.io/internal/layouts"
	"github.com/alex-schaaf/alex-schaaf.github.io/internal/markdown"
	"github.com/alex-schaaf/alex-schaaf.github.io/internal/metrics"
	"github.com/alex-schaaf/alex-schaaf.github.io/internal/observability"
)

// Generator owns the components of one build configuration. It may run
// any number of sequential builds (the preview server rebuilds on
// change); each Build call is independent.
type Generator struct {
	cfg      *config.Config
	outDir   string
	renderer *markdown.Renderer
	engine   *layouts.Engine
	bundler  *assets.Bundler
	recorder metrics.Recorder
}

// Option configures a Generator.
type Option func(*Generator)

// WithRecorder injects a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(g *Generator) {
		if r != nil {
			g.recorder = r
		}
	}
}

// NewGenerator wires up the build components. Layout parsing happens
// here so a broken layout file fails before any output is touched.
func NewGenerator(cfg *config.Config, outDir string, opts ...Option) (*Generator, error) {
	engine, err := layouts.NewEngine(cfg.Layouts.Directory, cfg.Layouts.Extensions, cfg.Site.DateFormat)
	if err != nil {
		return nil, err
	}

	g := &Generator{
		cfg:      cfg,
		outDir:   outDir,
		renderer: markdown.New(cfg.Markdown),
		engine:   engine,
		bundler:  assets.NewBundler(cfg.Assets),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// OutputDir returns the directory this generator writes into.
func (g *Generator) OutputDir() string { return g.outDir }

// Build runs the full pipeline once and returns the report. The report
// is non-nil even when the build fails; err is non-nil for fatal stage
// errors and cancellation.
func (g *Generator) Build(ctx context.Context) (*BuildReport, error) {
	buildID := uuid.NewString()
	ctx = observability.WithBuildID(ctx, buildID)

	bs := newBuildState(g, buildID)
	observability.InfoContext(ctx, "Build started",
		slog.String("content", g.cfg.Content.Directory),
		slog.String("output", g.outDir))

	err := runStages(ctx, bs, buildStages())

	bs.Report.Duration = time.Since(bs.start)
	bs.Report.finalize()
	g.recorder.ObserveBuildDuration(bs.Report.Duration)
	g.recorder.IncBuildOutcome(bs.Report.Outcome)
	g.recorder.SetPagesRendered(bs.Report.Pages)

	if err != nil {
		observability.ErrorContext(ctx, "Build failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", bs.Report.Duration))
		return bs.Report, err
	}

	observability.InfoContext(ctx, "Build complete",
		slog.Int("posts", bs.Report.Posts),
		slog.Int("pages", bs.Report.Pages),
		slog.Int("warnings", len(bs.Report.Warnings)),
		slog.Duration("duration", bs.Report.Duration))
	return bs.Report, nil
}

// buildStages is the ordered pipeline. Order matters: layouts need
// rendered HTML, pruning needs the full manifest of written files.
func buildStages() []namedStage {
	return []namedStage{
		{StagePrepare, stagePrepare},
		{StageLoadContent, stageLoadContent},
		{StageRenderMarkdown, stageRenderMarkdown},
		{StageApplyLayouts, stageApplyLayouts},
		{StageIndexes, stageIndexes},
		{StageWritePages, stageWritePages},
		{StageBundleAssets, stageBundleAssets},
		{StagePrune, stagePrune},
	}
}
