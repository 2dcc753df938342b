package markdown

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-slug"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/util/sets"
)

// anchors assigns slugified, document-unique IDs to headings and appends
// a permalink glyph linking to the heading's own anchor.
type anchors struct{}

func (a *anchors) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithASTTransformers(
			util.Prioritized(&anchorTransformer{}, 100),
		),
	)
}

const permalinkGlyph = "¶" // pilcrow

type anchorTransformer struct{}

func (t *anchorTransformer) Transform(doc *gmast.Document, reader text.Reader, _ parser.Context) {
	used := sets.New[string]()

	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		heading, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}

		id := uniqueID(slugify(headingText(heading, reader.Source())), used)
		heading.SetAttributeString("id", []byte(id))

		link := gmast.NewLink()
		link.Destination = []byte("#" + id)
		link.SetAttributeString("class", []byte("header-anchor"))
		link.SetAttributeString("aria-hidden", []byte("true"))
		link.AppendChild(link, gmast.NewString([]byte(permalinkGlyph)))
		heading.AppendChild(heading, link)

		return gmast.WalkSkipChildren, nil
	})
}

// headingText collects the plain text of a heading, ignoring inline markup.
func headingText(n gmast.Node, source []byte) string {
	var sb strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			sb.Write(t.Segment.Value(source))
		case *gmast.String:
			sb.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return sb.String()
}

func slugify(text string) string {
	s, err := slug.Normalize(text)
	if err != nil || s == "" {
		return "section"
	}
	return s
}

// uniqueID suffixes duplicate slugs numerically: intro, intro-1, intro-2.
func uniqueID(base string, used sets.Set[string]) string {
	id := base
	for i := 1; used.Has(id); i++ {
		id = fmt.Sprintf("%s-%d", base, i)
	}
	used.Add(id)
	return id
}
