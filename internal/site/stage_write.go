package site

import (
	"context"
	"os"
	"path/filepath"

	builderrors "github.com/alex-schaaf/alex-schaaf.github.io/internal/errors"
)

// stageWritePages flushes every rendered page to the output directory
// and records it in the build manifest.
func stageWritePages(ctx context.Context, bs *BuildState) error {
	for _, page := range bs.Pages {
		select {
		case <-ctx.Done():
			return newCanceledStageError(StageWritePages, ctx.Err())
		default:
		}
		if err := writeOutput(bs, page.Path, page.HTML); err != nil {
			return newFatalStageError(StageWritePages, err)
		}
	}
	bs.Report.Pages = len(bs.Pages)
	return nil
}

// writeOutput writes a site-relative file under the output directory and
// records it in the manifest.
func writeOutput(bs *BuildState, relPath string, data []byte) error {
	full := filepath.Join(bs.Generator.outDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(full), 0750); err != nil {
		return builderrors.OutputError("mkdir", err).WithContext("path", relPath)
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return builderrors.OutputError("write", err).WithContext("path", relPath)
	}
	bs.Manifest.Record(relPath, data)
	return nil
}
