// Package content discovers and models the Markdown posts that make up
// the site.
package content

import (
	"path"
	"strings"
	"time"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/frontmatter"
)

// Post is a single Markdown content file, immutable once loaded.
type Post struct {
	// SourcePath is the path relative to the content directory, with
	// forward slashes.
	SourcePath string

	// Slug is the URL-safe identifier derived from the file name.
	Slug string

	Meta frontmatter.PostMeta

	// Body is the Markdown source with frontmatter removed.
	Body []byte

	// HTML is the rendered body, populated by the render stage.
	HTML []byte
}

// Title returns the frontmatter title, falling back to the slug.
func (p *Post) Title() string {
	if p.Meta.Title != "" {
		return p.Meta.Title
	}
	return p.Slug
}

// Layout returns the named layout, falling back to the default post layout.
func (p *Post) Layout() string {
	if p.Meta.Layout != "" {
		return p.Meta.Layout
	}
	return "post"
}

// Date returns the publish date.
func (p *Post) Date() time.Time { return p.Meta.Date }

// OutputPath returns the site-relative path of the generated page,
// using directory-style pretty URLs (posts/foo.md -> posts/foo/index.html).
func (p *Post) OutputPath() string {
	dir := path.Dir(p.SourcePath)
	base := strings.TrimSuffix(path.Base(p.SourcePath), path.Ext(p.SourcePath))
	if base == "index" {
		if dir == "." {
			return "index.html"
		}
		return path.Join(dir, "index.html")
	}
	if dir == "." {
		return path.Join(p.Slug, "index.html")
	}
	return path.Join(dir, p.Slug, "index.html")
}

// URL returns the site-absolute URL of the generated page.
func (p *Post) URL() string {
	out := p.OutputPath()
	out = strings.TrimSuffix(out, "index.html")
	return "/" + out
}
