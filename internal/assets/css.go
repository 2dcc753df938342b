package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/config"
	"github.com/alex-schaaf/alex-schaaf.github.io/internal/util/sets"
)

// cssImportRe matches @import statements: @import "./base.css";
var cssImportRe = regexp.MustCompile(`(?m)^\s*@import\s+["']([^"']+)["']\s*;\s*$`)

// resolveCSS inlines local @import statements recursively. seen guards
// against import cycles; a file is inlined at most once. Remote imports
// are collected into remotes instead of inlined; CSS only honors
// @import rules that precede every other rule, so the bundler hoists
// them to the front of the output.
func resolveCSS(path string, seen sets.Set[string], remotes *[]string) ([]byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if seen.Has(abs) {
		return nil, nil
	}
	seen.Add(abs)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	var out []byte
	last := 0
	for _, loc := range cssImportRe.FindAllSubmatchIndex(raw, -1) {
		target := string(raw[loc[2]:loc[3]])
		out = append(out, raw[last:loc[0]]...)
		last = loc[1]

		if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
			stmt := strings.TrimSpace(string(raw[loc[0]:loc[1]]))
			if !slices.Contains(*remotes, stmt) {
				*remotes = append(*remotes, stmt)
			}
			continue
		}

		inlined, err := resolveCSS(filepath.Join(dir, filepath.FromSlash(target)), seen, remotes)
		if err != nil {
			return nil, err
		}
		out = append(out, inlined...)
	}
	out = append(out, raw[last:]...)
	return out, nil
}

// utilityCSS generates the utility-framework CSS from the configured
// design tokens: custom properties plus color, spacing, and container
// utilities. Token maps iterate sorted so output is byte-stable.
func utilityCSS(tokens config.DesignTokens) []byte {
	var sb strings.Builder

	if len(tokens.Colors) > 0 || len(tokens.Spacing) > 0 {
		sb.WriteString(":root {\n")
		for _, name := range sortedKeys(tokens.Colors) {
			fmt.Fprintf(&sb, "  --color-%s: %s;\n", name, tokens.Colors[name])
		}
		for _, name := range sortedKeys(tokens.Spacing) {
			fmt.Fprintf(&sb, "  --space-%s: %s;\n", name, tokens.Spacing[name])
		}
		sb.WriteString("}\n")
	}

	for _, name := range sortedKeys(tokens.Colors) {
		fmt.Fprintf(&sb, ".text-%s { color: var(--color-%s); }\n", name, name)
		fmt.Fprintf(&sb, ".bg-%s { background-color: var(--color-%s); }\n", name, name)
	}
	for _, name := range sortedKeys(tokens.Spacing) {
		fmt.Fprintf(&sb, ".m-%s { margin: var(--space-%s); }\n", name, name)
		fmt.Fprintf(&sb, ".p-%s { padding: var(--space-%s); }\n", name, name)
	}

	// Breakpoints sort by pixel value, not name, so the container rules
	// cascade smallest to largest.
	for _, name := range sortedByValue(tokens.Breakpoints) {
		fmt.Fprintf(&sb, "@media (min-width: %s) {\n  .container { max-width: %s; }\n}\n",
			tokens.Breakpoints[name], tokens.Breakpoints[name])
	}

	return []byte(sb.String())
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedByValue(m map[string]string) []string {
	keys := sortedKeys(m)
	sort.SliceStable(keys, func(i, j int) bool {
		return pixels(m[keys[i]]) < pixels(m[keys[j]])
	})
	return keys
}

func pixels(v string) int {
	n := 0
	for _, r := range v {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}
