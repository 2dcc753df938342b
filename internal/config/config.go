// Package config loads and validates the site configuration.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	builderrors "github.com/alex-schaaf/alex-schaaf.github.io/internal/errors"
)

// Config represents the site configuration
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Content  ContentConfig  `yaml:"content"`
	Layouts  LayoutsConfig  `yaml:"layouts"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Assets   AssetsConfig   `yaml:"assets"`
	Output   OutputConfig   `yaml:"output"`
}

// SiteConfig holds site-wide presentation settings
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Author      string `yaml:"author,omitempty"`
	BaseURL     string `yaml:"base_url,omitempty"`
	DateFormat  string `yaml:"date_format,omitempty"` // token format, e.g. "MMMM D, YYYY"
}

// ContentConfig describes where posts live and which ones build
type ContentConfig struct {
	Directory     string `yaml:"directory"`
	IncludeDrafts bool   `yaml:"include_drafts"`
}

// LayoutsConfig describes the layout template source
type LayoutsConfig struct {
	Directory  string   `yaml:"directory"`
	Extensions []string `yaml:"extensions,omitempty"` // recognized template file extensions
}

// MarkdownConfig mirrors the renderer options of the original site generator
type MarkdownConfig struct {
	HTML           bool   `yaml:"html"`        // raw HTML passthrough
	Breaks         bool   `yaml:"breaks"`      // single newline becomes <br>
	Linkify        bool   `yaml:"linkify"`     // autodetect bare URLs
	Typographer    bool   `yaml:"typographer"` // smart quotes and friends
	HighlightTheme string `yaml:"highlight_theme,omitempty"`
}

// AssetsConfig describes the CSS/JS bundling inputs
type AssetsConfig struct {
	CSSEntry string       `yaml:"css_entry"`
	JSEntry  string       `yaml:"js_entry"`
	Tokens   DesignTokens `yaml:"tokens,omitempty"`
}

// DesignTokens is the utility-CSS configuration: named colors, spacing
// steps, and responsive breakpoints.
type DesignTokens struct {
	Colors      map[string]string `yaml:"colors,omitempty"`
	Spacing     map[string]string `yaml:"spacing,omitempty"`
	Breakpoints map[string]string `yaml:"breakpoints,omitempty"`
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"` // Clean output directory before build
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists; absence is not an error.
	_ = godotenv.Load()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, builderrors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()
	applyEnvOverrides(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks settings that would otherwise fail mid-build.
func (c *Config) Validate() error {
	if c.Site.Title == "" {
		return builderrors.ValidationFailed("site.title", "must not be empty")
	}
	if c.Content.Directory == "" {
		return builderrors.ValidationFailed("content.directory", "must not be empty")
	}
	if c.Output.Directory == "" {
		return builderrors.ValidationFailed("output.directory", "must not be empty")
	}
	if c.Content.Directory == c.Output.Directory {
		return builderrors.ValidationFailed("output.directory", "must differ from content.directory")
	}
	return nil
}
