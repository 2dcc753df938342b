package content

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-slug"

	builderrors "github.com/alex-schaaf/alex-schaaf.github.io/internal/errors"
	"github.com/alex-schaaf/alex-schaaf.github.io/internal/frontmatter"
)

// Loader walks a content directory and produces Posts.
type Loader struct {
	dir           string
	includeDrafts bool
}

// NewLoader creates a Loader rooted at dir.
func NewLoader(dir string, includeDrafts bool) *Loader {
	return &Loader{dir: dir, includeDrafts: includeDrafts}
}

// Load reads every Markdown file under the content directory. A file whose
// frontmatter fails to parse aborts the load; the build must not emit a
// partial site.
func (l *Loader) Load() ([]Post, error) {
	if _, err := os.Stat(l.dir); err != nil {
		return nil, builderrors.Wrap(err, builderrors.CategoryContent, builderrors.SeverityFatal,
			"content directory not readable").WithContext("dir", l.dir)
	}

	var posts []Post
	err := filepath.WalkDir(l.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip hidden directories like .git or .obsidian.
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(p), ".md") {
			return nil
		}

		post, err := l.loadFile(p)
		if err != nil {
			return err
		}
		if post.Meta.Draft && !l.includeDrafts {
			slog.Debug("Skipping draft", "post", post.SourcePath)
			return nil
		}
		posts = append(posts, post)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortPosts(posts)
	return posts, nil
}

func (l *Loader) loadFile(p string) (Post, error) {
	raw, err := os.ReadFile(p)
	if err != nil {
		return Post{}, builderrors.Wrap(err, builderrors.CategoryContent, builderrors.SeverityFatal,
			"read content file").WithContext("path", p)
	}

	rel, err := filepath.Rel(l.dir, p)
	if err != nil {
		return Post{}, err
	}
	rel = filepath.ToSlash(rel)

	fm, body, _, err := frontmatter.Split(raw)
	if err != nil {
		return Post{}, builderrors.FrontMatterError(rel, err)
	}
	meta, err := frontmatter.DecodeMeta(fm)
	if err != nil {
		return Post{}, builderrors.FrontMatterError(rel, err)
	}

	base := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	s, err := slug.Normalize(base)
	if err != nil || s == "" {
		s = strings.ToLower(base)
	}

	return Post{
		SourcePath: rel,
		Slug:       s,
		Meta:       meta,
		Body:       body,
	}, nil
}

// sortPosts orders newest first; ties and undated posts fall back to the
// source path so ordering stays deterministic.
func sortPosts(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		di, dj := posts[i].Meta.Date, posts[j].Meta.Date
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return posts[i].SourcePath < posts[j].SourcePath
	})
}

// Tags returns the set of tags across posts with per-tag members, each
// member list preserving the overall post order.
func Tags(posts []Post) map[string][]*Post {
	tags := make(map[string][]*Post)
	for i := range posts {
		for _, tag := range posts[i].Meta.Tags {
			tags[tag] = append(tags[tag], &posts[i])
		}
	}
	return tags
}
