// Package assets bundles the CSS and JavaScript entry points into single
// minified output files.
package assets

import (
	"os"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/config"
	builderrors "github.com/alex-schaaf/alex-schaaf.github.io/internal/errors"
	"github.com/alex-schaaf/alex-schaaf.github.io/internal/util/sets"
)

const (
	cssMime = "text/css"
	jsMime  = "application/javascript"

	// Output names are fixed; the layouts reference them directly.
	CSSOutput = "assets/main.css"
	JSOutput  = "assets/main.js"
)

// Bundler resolves asset entry points and writes minified bundles.
type Bundler struct {
	cfg config.AssetsConfig
	m   *minify.M
}

// NewBundler creates a Bundler for the configured entry points.
func NewBundler(cfg config.AssetsConfig) *Bundler {
	m := minify.New()
	m.AddFunc(cssMime, css.Minify)
	m.AddFunc(jsMime, js.Minify)
	return &Bundler{cfg: cfg, m: m}
}

// BundleCSS resolves @import lines in the CSS entry, prepends preserved
// remote imports and the utility CSS generated from the design tokens,
// and minifies the result.
func (b *Bundler) BundleCSS() ([]byte, error) {
	entry := b.cfg.CSSEntry
	if _, err := os.Stat(entry); err != nil {
		return nil, builderrors.AssetEntryMissing(entry)
	}

	var remotes []string
	resolved, err := resolveCSS(entry, sets.New[string](), &remotes)
	if err != nil {
		return nil, builderrors.AssetBundleError("css", err)
	}

	var source []byte
	for _, stmt := range remotes {
		source = append(source, stmt...)
		source = append(source, '\n')
	}
	source = append(source, utilityCSS(b.cfg.Tokens)...)
	source = append(source, resolved...)
	out, err := b.m.Bytes(cssMime, source)
	if err != nil {
		return nil, builderrors.AssetBundleError("css", err)
	}
	return out, nil
}

// BundleJS resolves import lines in the JS entry and minifies the result.
func (b *Bundler) BundleJS() ([]byte, error) {
	entry := b.cfg.JSEntry
	if _, err := os.Stat(entry); err != nil {
		return nil, builderrors.AssetEntryMissing(entry)
	}

	resolved, err := resolveJS(entry, sets.New[string]())
	if err != nil {
		return nil, builderrors.AssetBundleError("js", err)
	}

	out, err := b.m.Bytes(jsMime, resolved)
	if err != nil {
		return nil, builderrors.AssetBundleError("js", err)
	}
	return out, nil
}
