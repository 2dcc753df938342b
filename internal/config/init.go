package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	exampleConfig := Config{
		Site: SiteConfig{
			Title:       "A Personal Blog",
			Description: "Notes on programming and whatever else comes up",
			Author:      "Your Name",
			BaseURL:     "https://example.github.io",
			DateFormat:  DefaultDateFormat,
		},
		Content: ContentConfig{
			Directory: DefaultContentDir,
		},
		Layouts: LayoutsConfig{
			Directory:  DefaultLayoutsDir,
			Extensions: DefaultLayoutExtensions,
		},
		Markdown: MarkdownConfig{
			HTML:           true,
			Breaks:         true,
			Linkify:        true,
			Typographer:    true,
			HighlightTheme: DefaultHighlight,
		},
		Assets: AssetsConfig{
			CSSEntry: DefaultCSSEntry,
			JSEntry:  DefaultJSEntry,
			Tokens: DesignTokens{
				Colors: map[string]string{
					"primary": "#2563eb",
					"gray":    "#6b7280",
					"white":   "#ffffff",
				},
				Breakpoints: map[string]string{
					"sm": "640px",
					"md": "768px",
					"lg": "1024px",
				},
			},
		},
		Output: OutputConfig{
			Directory: DefaultOutputDir,
			Clean:     true,
		},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
