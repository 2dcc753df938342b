package site

import (
	"context"
	"errors"
	"html"
	"log/slog"

	builderrors "github.com/alex-schaaf/alex-schaaf.github.io/internal/errors"
	"github.com/alex-schaaf/alex-schaaf.github.io/internal/observability"
)

// stageRenderMarkdown converts every post body to HTML. A render failure
// degrades that post to escaped preformatted text and the build
// continues; Markdown problems are never fatal.
func stageRenderMarkdown(ctx context.Context, bs *BuildState) error {
	var degraded []error
	for i := range bs.Posts {
		select {
		case <-ctx.Done():
			return newCanceledStageError(StageRenderMarkdown, ctx.Err())
		default:
		}

		post := &bs.Posts[i]
		rendered, err := bs.Generator.renderer.Render(post.Body)
		if err != nil {
			degraded = append(degraded, builderrors.MarkdownError(post.SourcePath, err))
			postCtx := observability.WithPost(ctx, post.SourcePath)
			observability.WarnContext(postCtx, "Markdown rendering degraded",
				slog.String("error", err.Error()))
			rendered = []byte("<pre>" + html.EscapeString(string(post.Body)) + "</pre>")
		}
		post.HTML = rendered
	}

	if len(degraded) > 0 {
		return newWarnStageError(StageRenderMarkdown, errors.Join(degraded...))
	}
	return nil
}
