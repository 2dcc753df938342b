package layouts

import (
	"html/template"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/config"
	builderrors "github.com/alex-schaaf/alex-schaaf.github.io/internal/errors"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine("", config.DefaultLayoutExtensions, "MMMM D, YYYY")
	require.NoError(t, err)
	return e
}

func TestRender_PostLayout_WrapsContent(t *testing.T) {
	e := testEngine(t)

	out, err := e.Render("post", Page{
		Site:    Site{Title: "My Blog", Author: "Alex"},
		Title:   "Hello World",
		Date:    time.Date(2021, 3, 14, 0, 0, 0, 0, time.UTC),
		Content: template.HTML("<p>body</p>"),
	})
	require.NoError(t, err)
	html := string(out)
	require.Contains(t, html, "<!DOCTYPE html>")
	require.Contains(t, html, "<h1>Hello World</h1>")
	require.Contains(t, html, "<p>body</p>")
	require.Contains(t, html, "March 14, 2021")
	require.Contains(t, html, "Hello World | My Blog")
}

func TestRender_UnknownLayout_IsFatalLayoutError(t *testing.T) {
	e := testEngine(t)

	_, err := e.Render("gallery", Page{})
	require.Error(t, err)
	require.True(t, builderrors.IsCategory(err, builderrors.CategoryLayout))
	require.True(t, builderrors.IsFatal(err))
}

func TestNewEngine_DirectoryOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	custom := `{{define "main"}}<div class="custom">{{ .Content }}</div>{{end}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "post.html"), []byte(custom), 0644))

	e, err := NewEngine(dir, config.DefaultLayoutExtensions, "")
	require.NoError(t, err)

	out, err := e.Render("post", Page{Content: template.HTML("<p>x</p>")})
	require.NoError(t, err)
	require.Contains(t, string(out), `<div class="custom">`)
}

func TestNewEngine_BareBodyIsWrappedAsMain(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "minimal.html"),
		[]byte(`<article>{{ .Content }}</article>`), 0644))

	e, err := NewEngine(dir, config.DefaultLayoutExtensions, "")
	require.NoError(t, err)
	require.True(t, e.Has("minimal"))

	out, err := e.Render("minimal", Page{Content: template.HTML("<p>x</p>")})
	require.NoError(t, err)
	require.Contains(t, string(out), "<article><p>x</p></article>")
	require.Contains(t, string(out), "<!DOCTYPE html>")
}

func TestNames_SortedIncludesBuiltins(t *testing.T) {
	e := testEngine(t)
	names := e.Names()
	require.Contains(t, names, "post")
	require.Contains(t, names, "home")
	require.Contains(t, names, "tag")
	require.Contains(t, names, "tags")
	require.IsIncreasing(t, names)
}

func TestNewEngine_IgnoresUnrecognizedExtensions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a layout"), 0644))

	e, err := NewEngine(dir, config.DefaultLayoutExtensions, "")
	require.NoError(t, err)
	require.False(t, e.Has("notes"))
}

func TestFormatTokens(t *testing.T) {
	date := time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		spec string
		want string
	}{
		{"MMMM D, YYYY", "March 4, 2021"},
		{"YYYY-MM-DD", "2021-03-04"},
		{"D MMM YY", "4 Mar 21"},
		{"completely bogus", "completely bogus"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, FormatTokens(date, tc.spec), tc.spec)
	}
}

func TestFormatDate_EmptySpecUsesDefault(t *testing.T) {
	e := testEngine(t)
	date := time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "March 4, 2021", e.formatDate(date, ""))
	require.Equal(t, "", e.formatDate(time.Time{}, ""))
}
