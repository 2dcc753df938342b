package site

import (
	"context"
	"os"

	builderrors "github.com/alex-schaaf/alex-schaaf.github.io/internal/errors"
	"github.com/alex-schaaf/alex-schaaf.github.io/internal/manifest"
)

// stagePrepare makes the output directory usable and loads the previous
// build's manifest for later pruning.
func stagePrepare(_ context.Context, bs *BuildState) error {
	outDir := bs.Generator.outDir

	if bs.Generator.cfg.Output.Clean {
		if err := os.RemoveAll(outDir); err != nil {
			return newFatalStageError(StagePrepare, builderrors.OutputError("clean output dir", err))
		}
	}
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return newFatalStageError(StagePrepare, builderrors.OutputError("create output dir", err))
	}

	bs.Previous = manifest.Load(outDir)
	return nil
}
