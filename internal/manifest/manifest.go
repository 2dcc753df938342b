// Package manifest records which files a build wrote, so a rebuild can
// prune outputs whose source no longer exists.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// FileName is the manifest's location inside the output directory.
const FileName = ".manifest.json"

// Manifest maps site-relative output paths to the sha256 of their content.
type Manifest struct {
	BuildID string            `json:"build_id"`
	BuiltAt time.Time         `json:"built_at"`
	Files   map[string]string `json:"files"`
}

// New returns an empty manifest for a build.
func New(buildID string) *Manifest {
	return &Manifest{
		BuildID: buildID,
		BuiltAt: time.Now().UTC(),
		Files:   make(map[string]string),
	}
}

// Record notes a written file and its content hash.
func (m *Manifest) Record(relPath string, content []byte) {
	sum := sha256.Sum256(content)
	m.Files[relPath] = hex.EncodeToString(sum[:])
}

// Paths returns the recorded paths, sorted.
func (m *Manifest) Paths() []string {
	paths := make([]string, 0, len(m.Files))
	for p := range m.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Load reads the previous manifest from the output directory. A missing
// or unreadable manifest is treated as empty; the first build has none.
func Load(outDir string) *Manifest {
	raw, err := os.ReadFile(filepath.Join(outDir, FileName))
	if err != nil {
		return &Manifest{Files: map[string]string{}}
	}
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil || m.Files == nil {
		return &Manifest{Files: map[string]string{}}
	}
	return &m
}

// Save writes the manifest into the output directory.
func (m *Manifest) Save(outDir string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, FileName), data, 0644)
}

// Prune deletes files recorded in prev but absent from current, then
// removes any directories left empty. Returns the deleted paths.
func Prune(outDir string, prev, current *Manifest) ([]string, error) {
	var removed []string
	for _, rel := range prev.Paths() {
		if _, keep := current.Files[rel]; keep {
			continue
		}
		full := filepath.Join(outDir, filepath.FromSlash(rel))
		if err := os.Remove(full); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, err
		}
		removed = append(removed, rel)
		removeEmptyParents(outDir, filepath.Dir(full))
	}
	return removed, nil
}

// removeEmptyParents walks upward from dir, deleting empty directories
// until it reaches outDir or a non-empty directory.
func removeEmptyParents(outDir, dir string) {
	root, err := filepath.Abs(outDir)
	if err != nil {
		return
	}
	for {
		abs, err := filepath.Abs(dir)
		if err != nil || abs == root {
			return
		}
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}
