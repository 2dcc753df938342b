package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/util/sets"
)

// jsImportRe matches bare local imports: import './nav.js';
// Named imports and package imports are outside this bundler's scope.
var jsImportRe = regexp.MustCompile(`(?m)^\s*import\s+["']([^"']+)["']\s*;?\s*$`)

// resolveJS concatenates local import statements depth-first, so a
// dependency's code lands before the code that imports it.
func resolveJS(path string, seen sets.Set[string]) ([]byte, error) {
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
	for _, loc := range jsImportRe.FindAllSubmatchIndex(raw, -1) {
		target := string(raw[loc[2]:loc[3]])
		if !strings.HasPrefix(target, ".") {
			continue
		}
		out = append(out, raw[last:loc[0]]...)
		last = loc[1]

		inlined, err := resolveJS(filepath.Join(dir, filepath.FromSlash(target)), seen)
		if err != nil {
			return nil, err
		}
		out = append(out, inlined...)
		out = append(out, '\n')
	}
	out = append(out, raw[last:]...)
	return out, nil
}
