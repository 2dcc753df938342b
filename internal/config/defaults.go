package config

// Default values applied after unmarshalling. CLI flags and environment
// overrides are applied afterwards and take precedence.

const (
	DefaultContentDir = "content"
	DefaultLayoutsDir = "layouts"
	DefaultOutputDir  = "public"
	DefaultDateFormat = "MMMM D, YYYY"
	DefaultHighlight  = "github"
	DefaultCSSEntry   = "assets/css/main.css"
	DefaultJSEntry    = "assets/js/main.js"
)

// DefaultLayoutExtensions are the template file extensions the layout
// loader recognizes.
var DefaultLayoutExtensions = []string{".html", ".tmpl"}

func (c *Config) applyDefaults() {
	if c.Content.Directory == "" {
		c.Content.Directory = DefaultContentDir
	}
	if c.Layouts.Directory == "" {
		c.Layouts.Directory = DefaultLayoutsDir
	}
	if len(c.Layouts.Extensions) == 0 {
		c.Layouts.Extensions = append([]string(nil), DefaultLayoutExtensions...)
	}
	if c.Output.Directory == "" {
		c.Output.Directory = DefaultOutputDir
	}
	if c.Site.DateFormat == "" {
		c.Site.DateFormat = DefaultDateFormat
	}
	if c.Markdown.HighlightTheme == "" {
		c.Markdown.HighlightTheme = DefaultHighlight
	}
	if c.Assets.CSSEntry == "" {
		c.Assets.CSSEntry = DefaultCSSEntry
	}
	if c.Assets.JSEntry == "" {
		c.Assets.JSEntry = DefaultJSEntry
	}
}

// DefaultConfig returns a fully-defaulted configuration with the renderer
// options the original site shipped with.
func DefaultConfig() *Config {
	cfg := &Config{
		Site: SiteConfig{Title: "A Personal Blog"},
		Markdown: MarkdownConfig{
			HTML:        true,
			Breaks:      true,
			Linkify:     true,
			Typographer: true,
		},
	}
	cfg.applyDefaults()
	return cfg
}
