package site

import (
	"context"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/assets"
)

// stageBundleAssets compiles the CSS and JS bundles. A missing entry
// point is fatal; the layouts reference both bundles unconditionally.
func stageBundleAssets(_ context.Context, bs *BuildState) error {
	css, err := bs.Generator.bundler.BundleCSS()
	if err != nil {
		return newFatalStageError(StageBundleAssets, err)
	}
	js, err := bs.Generator.bundler.BundleJS()
	if err != nil {
		return newFatalStageError(StageBundleAssets, err)
	}

	if err := writeOutput(bs, assets.CSSOutput, css); err != nil {
		return newFatalStageError(StageBundleAssets, err)
	}
	if err := writeOutput(bs, assets.JSOutput, js); err != nil {
		return newFatalStageError(StageBundleAssets, err)
	}

	bs.Report.Assets = 2
	bs.Generator.recorder.SetAssetBytes("css", len(css))
	bs.Generator.recorder.SetAssetBytes("js", len(js))
	return nil
}
