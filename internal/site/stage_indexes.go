package site

import (
	"context"
	"path"
	"sort"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/content"
	"github.com/alex-schaaf/alex-schaaf.github.io/internal/layouts"
)

// stageIndexes generates the home listing and the per-tag listing pages.
// A content file that already claims index.html (a hand-written
// index.md) wins over the generated home page.
func stageIndexes(ctx context.Context, bs *BuildState) error {
	engine := bs.Generator.engine
	site := bs.site()

	claimed := make(map[string]struct{}, len(bs.Pages))
	for _, page := range bs.Pages {
		claimed[page.Path] = struct{}{}
	}

	if _, taken := claimed["index.html"]; !taken {
		home, err := engine.Render("home", layouts.Page{
			Site:  site,
			Posts: bs.PostRefs,
		})
		if err != nil {
			return newFatalStageError(StageIndexes, err)
		}
		bs.Pages = append(bs.Pages, Page{Path: "index.html", HTML: home})
	}

	tags := content.Tags(bs.Posts)
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		select {
		case <-ctx.Done():
			return newCanceledStageError(StageIndexes, ctx.Err())
		default:
		}

		refs := make([]layouts.PostRef, 0, len(tags[name]))
		for _, post := range tags[name] {
			refs = append(refs, layouts.PostRef{
				Title: post.Title(),
				URL:   post.URL(),
				Date:  post.Date(),
				Tags:  post.Meta.Tags,
			})
		}
		page, err := engine.Render("tag", layouts.Page{
			Site:  site,
			Title: name,
			Tag:   name,
			Posts: refs,
		})
		if err != nil {
			return newFatalStageError(StageIndexes, err)
		}
		bs.Pages = append(bs.Pages, Page{
			Path: path.Join("tags", layouts.Slugify(name), "index.html"),
			HTML: page,
		})
	}

	if len(names) > 0 {
		page, err := engine.Render("tags", layouts.Page{
			Site:  site,
			Title: "Tags",
			Tags:  names,
		})
		if err != nil {
			return newFatalStageError(StageIndexes, err)
		}
		bs.Pages = append(bs.Pages, Page{Path: "tags/index.html", HTML: page})
	}

	return nil
}
