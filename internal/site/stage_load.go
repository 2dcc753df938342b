package site

import (
	"context"
	"errors"
	"log/slog"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/content"
	"github.com/alex-schaaf/alex-schaaf.github.io/internal/observability"
)

// stageLoadContent walks the content directory into Posts. Frontmatter
// failures are fatal here; the site must not build partially.
func stageLoadContent(ctx context.Context, bs *BuildState) error {
	cfg := bs.Generator.cfg
	loader := content.NewLoader(cfg.Content.Directory, cfg.Content.IncludeDrafts)

	posts, err := loader.Load()
	if err != nil {
		return newFatalStageError(StageLoadContent, err)
	}

	bs.Posts = posts
	bs.Report.Posts = len(posts)
	observability.DebugContext(ctx, "Content loaded", slog.Int("posts", len(posts)))

	if len(posts) == 0 {
		return newWarnStageError(StageLoadContent, errors.New("no content files found"))
	}
	return nil
}
