package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecord_And_SaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	m := New("build-1")
	m.Record("index.html", []byte("<html>"))
	m.Record("posts/a/index.html", []byte("<html>a</html>"))
	require.NoError(t, m.Save(dir))

	loaded := Load(dir)
	require.Equal(t, "build-1", loaded.BuildID)
	require.Equal(t, m.Files, loaded.Files)
	require.Equal(t, []string{"index.html", "posts/a/index.html"}, loaded.Paths())
}

func TestLoad_MissingManifest_IsEmpty(t *testing.T) {
	m := Load(t.TempDir())
	require.Empty(t, m.Files)
}

func TestPrune_RemovesStaleOutputsAndEmptyDirs(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "posts", "gone", "index.html")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0750))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))
	kept := filepath.Join(dir, "posts", "kept", "index.html")
	require.NoError(t, os.MkdirAll(filepath.Dir(kept), 0750))
	require.NoError(t, os.WriteFile(kept, []byte("new"), 0644))

	prev := New("build-1")
	prev.Record("posts/gone/index.html", []byte("old"))
	prev.Record("posts/kept/index.html", []byte("new"))

	current := New("build-2")
	current.Record("posts/kept/index.html", []byte("new"))

	removed, err := Prune(dir, prev, current)
	require.NoError(t, err)
	require.Equal(t, []string{"posts/gone/index.html"}, removed)
	require.NoFileExists(t, stale)
	require.NoDirExists(t, filepath.Join(dir, "posts", "gone"))
	require.FileExists(t, kept)
	require.DirExists(t, filepath.Join(dir, "posts"))
}

func TestPrune_AlreadyDeletedFile_IsIgnored(t *testing.T) {
	dir := t.TempDir()

	prev := New("build-1")
	prev.Record("vanished.html", []byte("x"))

	removed, err := Prune(dir, prev, New("build-2"))
	require.NoError(t, err)
	require.Empty(t, removed)
}
