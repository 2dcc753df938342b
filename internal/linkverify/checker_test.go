package linkverify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/retry"
)

func writePage(t *testing.T, outDir, rel, body string) {
	t.Helper()
	full := filepath.Join(outDir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0750))
	require.NoError(t, os.WriteFile(full, []byte(body), 0644))
}

func TestExtractLinksFromReader_CollectsAnchorsImagesAndAssets(t *testing.T) {
	page := `<html><head>
<link rel="stylesheet" href="/assets/main.css">
<script src="/assets/main.js"></script>
</head><body>
<a href="/posts/hello/">Hello</a>
<a href="https://example.com/external">External</a>
<img src="/images/pic.png" alt="A picture">
</body></html>`

	links, err := ExtractLinksFromReader(strings.NewReader(page), "https://blog.test/")
	require.NoError(t, err)
	require.Len(t, links, 5)

	byURL := map[string]*Link{}
	for _, l := range links {
		byURL[l.URL] = l
	}
	require.True(t, byURL["/posts/hello/"].Internal)
	require.Equal(t, "Hello", byURL["/posts/hello/"].Text)
	require.False(t, byURL["https://example.com/external"].Internal)
	require.Equal(t, "img", byURL["/images/pic.png"].Tag)
	require.Equal(t, "A picture", byURL["/images/pic.png"].Text)
}

func TestRun_ResolvesPrettyURLsAgainstOutputTree(t *testing.T) {
	outDir := t.TempDir()
	writePage(t, outDir, "index.html",
		`<html><body><a href="/posts/hello/">Hello</a><a href="posts/hello/index.html">Direct</a></body></html>`)
	writePage(t, outDir, "posts/hello/index.html",
		`<html><body><a href="/">Home</a></body></html>`)

	report, err := NewChecker(outDir, "https://blog.test/", Options{}).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, report.Pages)
	require.Empty(t, report.Broken)
}

func TestRun_ReportsMissingTarget(t *testing.T) {
	outDir := t.TempDir()
	writePage(t, outDir, "index.html",
		`<html><body><a href="/posts/gone/">Gone</a></body></html>`)

	report, err := NewChecker(outDir, "https://blog.test/", Options{}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Broken, 1)
	require.Equal(t, "index.html", report.Broken[0].Page)
	require.Equal(t, "/posts/gone/", report.Broken[0].URL)
	require.Contains(t, report.Broken[0].Reason, "not found")
}

func TestRun_ChecksFragments(t *testing.T) {
	outDir := t.TempDir()
	writePage(t, outDir, "index.html",
		`<html><body>
<a href="/posts/hello/#intro">Good</a>
<a href="/posts/hello/#missing">Bad</a>
<a href="#local">Local</a>
<h2 id="local">Local heading</h2>
</body></html>`)
	writePage(t, outDir, "posts/hello/index.html",
		`<html><body><h1 id="intro">Intro</h1></body></html>`)

	report, err := NewChecker(outDir, "https://blog.test/", Options{}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Broken, 1)
	require.Contains(t, report.Broken[0].Reason, "#missing")
}

func TestRun_SkipsExternalLinksByDefault(t *testing.T) {
	outDir := t.TempDir()
	writePage(t, outDir, "index.html",
		`<html><body><a href="https://definitely-not-resolvable.invalid/">Out</a></body></html>`)

	report, err := NewChecker(outDir, "https://blog.test/", Options{}).Run(context.Background())
	require.NoError(t, err)
	require.Empty(t, report.Broken)
}

func TestRun_ProbesExternalLinksWhenEnabled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ok" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	outDir := t.TempDir()
	writePage(t, outDir, "index.html",
		`<html><body><a href="`+srv.URL+`/ok">Good</a><a href="`+srv.URL+`/gone">Bad</a></body></html>`)

	report, err := NewChecker(outDir, "https://blog.test/", Options{External: true}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Broken, 1)
	require.Equal(t, srv.URL+"/gone", report.Broken[0].URL)
	require.Contains(t, report.Broken[0].Reason, "404")
}

func TestRun_RetriesTransientExternalFailures(t *testing.T) {
	var mu sync.Mutex
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		first := hits == 1
		mu.Unlock()
		if first {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	outDir := t.TempDir()
	writePage(t, outDir, "index.html",
		`<html><body><a href="`+srv.URL+`/flaky">Flaky</a></body></html>`)

	opts := Options{
		External: true,
		Retry:    retry.NewPolicy(retry.BackoffFixed, time.Millisecond, time.Millisecond, 2),
	}
	report, err := NewChecker(outDir, "https://blog.test/", opts).Run(context.Background())
	require.NoError(t, err)
	require.Empty(t, report.Broken)

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, hits, 2)
}
