package site

import (
	"time"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/metrics"
)

// StageCount tallies outcomes per stage.
type StageCount struct {
	Success  int `json:"success"`
	Warning  int `json:"warning"`
	Fatal    int `json:"fatal"`
	Canceled int `json:"canceled"`
}

// BuildReport summarizes one build for logs, the CLI, and the history
// store.
type BuildReport struct {
	BuildID  string        `json:"build_id"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
	Outcome  string        `json:"outcome"` // success|warning|failed|canceled

	Posts   int      `json:"posts"`
	Pages   int      `json:"pages"`
	Assets  int      `json:"assets"`
	Removed []string `json:"removed,omitempty"`

	StageDurations map[StageName]time.Duration `json:"stage_durations"`
	StageCounts    map[StageName]StageCount    `json:"stage_counts"`

	Warnings []error `json:"-"`
	Errors   []error `json:"-"`
}

func newBuildReport(buildID string) *BuildReport {
	return &BuildReport{
		BuildID:        buildID,
		Started:        time.Now().UTC(),
		StageDurations: make(map[StageName]time.Duration),
		StageCounts:    make(map[StageName]StageCount),
	}
}

// recordStage stores the stage's duration and classification and emits
// the result metric.
func (r *BuildReport) recordStage(stage StageName, dur time.Duration, se *StageError, recorder metrics.Recorder) {
	r.StageDurations[stage] = dur

	sc := r.StageCounts[stage]
	switch resultFor(se) {
	case metrics.ResultSuccess:
		sc.Success++
	case metrics.ResultWarning:
		sc.Warning++
		r.Warnings = append(r.Warnings, se)
	case metrics.ResultCanceled:
		sc.Canceled++
		r.Errors = append(r.Errors, se)
	case metrics.ResultFatal:
		sc.Fatal++
		r.Errors = append(r.Errors, se)
	}
	r.StageCounts[stage] = sc

	recorder.IncStageResult(string(stage), resultFor(se))
}

// finalize derives the overall outcome after all stages have run.
func (r *BuildReport) finalize() {
	switch {
	case r.hasKind(StageErrorCanceled):
		r.Outcome = "canceled"
	case len(r.Errors) > 0:
		r.Outcome = "failed"
	case len(r.Warnings) > 0:
		r.Outcome = "warning"
	default:
		r.Outcome = "success"
	}
}

func (r *BuildReport) hasKind(kind StageErrorKind) bool {
	for _, counts := range r.StageCounts {
		switch kind {
		case StageErrorCanceled:
			if counts.Canceled > 0 {
				return true
			}
		case StageErrorFatal:
			if counts.Fatal > 0 {
				return true
			}
		case StageErrorWarning:
			if counts.Warning > 0 {
				return true
			}
		}
	}
	return false
}
