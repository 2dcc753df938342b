package site

import (
	"time"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/content"
	"github.com/alex-schaaf/alex-schaaf.github.io/internal/layouts"
	"github.com/alex-schaaf/alex-schaaf.github.io/internal/manifest"
)

// Page is a rendered page awaiting (or after) its write to disk.
type Page struct {
	// Path is the site-relative output path, forward slashes.
	Path string
	HTML []byte
}

// BuildState carries mutable state across stages of one build.
type BuildState struct {
	Generator *Generator
	Posts     []content.Post
	PostRefs  []layouts.PostRef // listing view, built by the layout stage
	Pages     []Page
	Manifest  *manifest.Manifest // files this build writes
	Previous  *manifest.Manifest // manifest from the prior build, for pruning
	Report    *BuildReport
	start     time.Time
}

// newBuildState constructs a BuildState.
func newBuildState(g *Generator, buildID string) *BuildState {
	return &BuildState{
		Generator: g,
		Manifest:  manifest.New(buildID),
		Report:    newBuildReport(buildID),
		start:     time.Now(),
	}
}

// site returns the layout-facing site fields.
func (bs *BuildState) site() layouts.Site {
	c := bs.Generator.cfg.Site
	return layouts.Site{
		Title:       c.Title,
		Description: c.Description,
		Author:      c.Author,
		BaseURL:     c.BaseURL,
	}
}
