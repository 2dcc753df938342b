package markdown

import (
	"strconv"

	gmast "github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// footnoteCaptionRenderer replaces the stock footnote reference rendering
// so repeated uses of one footnote read "1" and "1:1" instead of both
// reading "1". Element IDs keep the upstream fnref scheme so the
// generated back-links resolve unchanged.
type footnoteCaptionRenderer struct{}

func (r *footnoteCaptionRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(extast.KindFootnoteLink, r.renderFootnoteLink)
}

func (r *footnoteCaptionRenderer) renderFootnoteLink(
	w util.BufWriter, _ []byte, node gmast.Node, entering bool,
) (gmast.WalkStatus, error) {
	if !entering {
		return gmast.WalkContinue, nil
	}
	n := node.(*extast.FootnoteLink)
	index := strconv.Itoa(n.Index)

	_, _ = w.WriteString(`<sup id="fnref`)
	if n.RefIndex > 0 {
		_, _ = w.WriteString(strconv.Itoa(n.RefIndex))
	}
	_, _ = w.WriteString(`:`)
	_, _ = w.WriteString(index)
	_, _ = w.WriteString(`"><a href="#fn:`)
	_, _ = w.WriteString(index)
	_, _ = w.WriteString(`" class="footnote-ref" role="doc-noteref">`)
	_, _ = w.WriteString(caption(n.Index, n.RefIndex))
	_, _ = w.WriteString(`</a></sup>`)

	return gmast.WalkContinue, nil
}

// caption numbers a footnote use as "N", or "N:subId" for uses after the
// first.
func caption(index, refIndex int) string {
	if refIndex > 0 {
		return strconv.Itoa(index) + ":" + strconv.Itoa(refIndex)
	}
	return strconv.Itoa(index)
}
