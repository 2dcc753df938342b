// Package markdown renders post bodies to HTML with the renderer options
// and extensions the site has always used: raw HTML passthrough, hard
// line breaks, bare-URL autolinking, typographic replacements, heading
// anchors, footnotes, and fenced-code syntax highlighting.
package markdown

import (
	"bytes"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/config"
)

// Renderer converts Markdown to HTML. Safe for concurrent use; the
// underlying goldmark instance is immutable after construction.
type Renderer struct {
	md goldmark.Markdown
}

// New builds a Renderer from the configured options.
func New(cfg config.MarkdownConfig) *Renderer {
	exts := []goldmark.Extender{
		extension.Footnote,
		&anchors{},
		newHighlighting(cfg.HighlightTheme),
	}
	if cfg.Linkify {
		exts = append(exts, extension.Linkify)
	}
	if cfg.Typographer {
		exts = append(exts, extension.Typographer)
	}

	rendererOpts := []renderer.Option{
		// Overrides the footnote reference captions, see footnotes.go.
		renderer.WithNodeRenderers(
			util.Prioritized(&footnoteCaptionRenderer{}, 100),
		),
	}
	if cfg.HTML {
		rendererOpts = append(rendererOpts, goldmarkhtml.WithUnsafe())
	}
	if cfg.Breaks {
		rendererOpts = append(rendererOpts, goldmarkhtml.WithHardWraps())
	}

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithRendererOptions(rendererOpts...),
	)

	return &Renderer{md: md}
}

// Render converts a Markdown body (frontmatter already removed) to HTML.
// Malformed Markdown is not an error; goldmark produces best-effort HTML.
func (r *Renderer) Render(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// newHighlighting configures the chroma pass for fenced code blocks. An
// unrecognized language tag falls through to plain preformatted text.
func newHighlighting(style string) goldmark.Extender {
	return highlighting.NewHighlighting(
		highlighting.WithStyle(style),
		highlighting.WithGuessLanguage(false),
		highlighting.WithFormatOptions(
			chromahtml.WithClasses(false),
		),
	)
}
