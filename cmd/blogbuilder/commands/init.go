package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/config"
)

// InitCmd implements the 'init' command. It writes a starter config and
// scaffolds the content and asset directories so the first build works
// out of the box.
type InitCmd struct {
	Force bool `help:"Overwrite an existing configuration file"`
	Bare  bool `help:"Write only the configuration file, no sample content"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	if err := config.Init(root.Config, i.Force); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", root.Config)

	if i.Bare {
		return nil
	}

	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if err := scaffold(cfg); err != nil {
		return err
	}
	fmt.Println("Scaffolded content and asset directories; run 'blogbuilder build' to generate the site")
	return nil
}

// scaffold creates the project skeleton, skipping files that already
// exist.
func scaffold(cfg *config.Config) error {
	files := map[string]string{
		filepath.Join(cfg.Content.Directory, "posts", "hello-world.md"): sampleMarkdown(),
		cfg.Assets.CSSEntry: sampleCSS,
		cfg.Assets.JSEntry:  sampleJS,
	}
	for path, content := range files {
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return fmt.Errorf("create directory for %s: %w", path, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err := os.MkdirAll(cfg.Layouts.Directory, 0750); err != nil {
		return fmt.Errorf("create layouts directory: %w", err)
	}
	return nil
}

func sampleMarkdown() string {
	return fmt.Sprintf(`---
title: Hello, World
date: %s
tags: [meta]
---
# Welcome

This is your first post. Edit it, or add more Markdown files next to it.

Footnotes work too.[^1]

[^1]: Like this one.
`, time.Now().Format("2006-01-02"))
}

const sampleCSS = `/* Site entry stylesheet. @import statements are inlined at build time. */

body {
  font-family: system-ui, sans-serif;
  max-width: 42rem;
  margin: 0 auto;
  padding: var(--space-4, 1rem);
}

.header-anchor {
  text-decoration: none;
  opacity: 0.3;
}

.header-anchor:hover {
  opacity: 1;
}
`

const sampleJS = `// Site entry script. Relative import statements are inlined at build time.
`
