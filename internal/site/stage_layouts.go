package site

import (
	"context"
	"html/template"
	"strings"

	builderrors "github.com/alex-schaaf/alex-schaaf.github.io/internal/errors"
	"github.com/alex-schaaf/alex-schaaf.github.io/internal/layouts"
)

// stageApplyLayouts wraps each rendered post in its named layout. A post
// referencing an unregistered layout aborts the build; emitting a page
// without its chrome would ship a broken site.
func stageApplyLayouts(ctx context.Context, bs *BuildState) error {
	engine := bs.Generator.engine
	site := bs.site()

	bs.PostRefs = make([]layouts.PostRef, 0, len(bs.Posts))
	for i := range bs.Posts {
		post := &bs.Posts[i]
		bs.PostRefs = append(bs.PostRefs, layouts.PostRef{
			Title:       post.Title(),
			URL:         post.URL(),
			Date:        post.Date(),
			Tags:        post.Meta.Tags,
			Description: post.Meta.Description,
		})
	}

	for i := range bs.Posts {
		select {
		case <-ctx.Done():
			return newCanceledStageError(StageApplyLayouts, ctx.Err())
		default:
		}

		post := &bs.Posts[i]
		layout := post.Layout()
		if !engine.Has(layout) {
			return newFatalStageError(StageApplyLayouts,
				builderrors.UnknownLayout(layout, post.SourcePath).
					WithContext("available", strings.Join(engine.Names(), ", ")))
		}

		page, err := engine.Render(layout, layouts.Page{
			Site:        site,
			Title:       post.Title(),
			Description: post.Meta.Description,
			Date:        post.Date(),
			Tags:        post.Meta.Tags,
			URL:         post.URL(),
			Content:     template.HTML(post.HTML),
		})
		if err != nil {
			return newFatalStageError(StageApplyLayouts, err)
		}
		bs.Pages = append(bs.Pages, Page{Path: post.OutputPath(), HTML: page})
	}
	return nil
}
