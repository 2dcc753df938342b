package site

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/metrics"
	"github.com/alex-schaaf/alex-schaaf.github.io/internal/observability"
)

// StageName identifies a pipeline stage in reports, logs, and metrics.
type StageName string

const (
	StagePrepare        StageName = "prepare"
	StageLoadContent    StageName = "load_content"
	StageRenderMarkdown StageName = "render_markdown"
	StageApplyLayouts   StageName = "apply_layouts"
	StageIndexes        StageName = "indexes"
	StageWritePages     StageName = "write_pages"
	StageBundleAssets   StageName = "bundle_assets"
	StagePrune          StageName = "prune"
)

// Stage is a discrete unit of work in the site build.
type Stage func(ctx context.Context, bs *BuildState) error

type namedStage struct {
	name StageName
	fn   Stage
}

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// Helpers to classify errors.
func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}
func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}
func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// runStages executes stages in order, recording timing and stopping on
// the first fatal error or cancellation. Warnings are recorded and the
// pipeline continues.
func runStages(ctx context.Context, bs *BuildState, stages []namedStage) error {
	recorder := bs.Generator.recorder

	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.name, ctx.Err())
			bs.Report.recordStage(st.name, 0, se, recorder)
			return se
		default:
		}

		stageCtx := observability.WithStage(ctx, string(st.name))
		t0 := time.Now()
		err := st.fn(stageCtx, bs)
		dur := time.Since(t0)
		recorder.ObserveStageDuration(string(st.name), dur)

		var se *StageError
		if err != nil && !errors.As(err, &se) {
			// Wrap unknown errors as fatal by default.
			se = newFatalStageError(st.name, err)
		}
		bs.Report.recordStage(st.name, dur, se, recorder)

		if se == nil {
			continue
		}
		switch se.Kind {
		case StageErrorWarning:
			observability.WarnContext(stageCtx, "Stage completed with warning")
			continue
		default:
			return se
		}
	}
	return nil
}

// resultFor maps a stage error (or nil) onto a metrics label.
func resultFor(se *StageError) metrics.ResultLabel {
	if se == nil {
		return metrics.ResultSuccess
	}
	switch se.Kind {
	case StageErrorWarning:
		return metrics.ResultWarning
	case StageErrorCanceled:
		return metrics.ResultCanceled
	default:
		return metrics.ResultFatal
	}
}
