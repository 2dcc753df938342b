package site

import (
	"context"
	"log/slog"

	builderrors "github.com/alex-schaaf/alex-schaaf.github.io/internal/errors"
	"github.com/alex-schaaf/alex-schaaf.github.io/internal/manifest"
	"github.com/alex-schaaf/alex-schaaf.github.io/internal/observability"
)

// stagePrune deletes outputs whose source vanished since the previous
// build, then saves the new manifest.
func stagePrune(ctx context.Context, bs *BuildState) error {
	removed, err := manifest.Prune(bs.Generator.outDir, bs.Previous, bs.Manifest)
	if err != nil {
		return newWarnStageError(StagePrune,
			builderrors.Wrap(err, builderrors.CategoryFileSystem, builderrors.SeverityWarning,
				"stale output pruning incomplete"))
	}
	bs.Report.Removed = removed
	if len(removed) > 0 {
		observability.InfoContext(ctx, "Pruned stale outputs", slog.Int("files", len(removed)))
	}

	if err := bs.Manifest.Save(bs.Generator.outDir); err != nil {
		return newFatalStageError(StagePrune, builderrors.OutputError("save manifest", err))
	}
	return nil
}
