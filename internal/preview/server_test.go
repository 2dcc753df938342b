package preview

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/config"
)

func previewConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	mustWrite := func(rel, content string) {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0750))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	mustWrite("content/hello.md", `---
title: Hello
date: 2023-01-01
---
Hi there.
`)
	mustWrite("assets/css/main.css", "body{}")
	mustWrite("assets/js/main.js", "")

	cfg := config.DefaultConfig()
	cfg.Content.Directory = filepath.Join(root, "content")
	cfg.Layouts.Directory = filepath.Join(root, "layouts")
	cfg.Assets.CSSEntry = filepath.Join(root, "assets/css/main.css")
	cfg.Assets.JSEntry = filepath.Join(root, "assets/js/main.js")
	cfg.Output.Directory = filepath.Join(root, "public")
	return cfg
}

func TestDebouncer_CoalescesBursts(t *testing.T) {
	rebuildReq, trigger := newDebouncer()

	trigger()
	trigger()
	trigger()

	select {
	case <-rebuildReq:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced rebuild request never arrived")
	}
	require.Empty(t, rebuildReq)
}

func TestShouldIgnoreEvent(t *testing.T) {
	require.True(t, shouldIgnoreEvent("/tmp/.hidden.md"))
	require.True(t, shouldIgnoreEvent("/tmp/foo.swp"))
	require.True(t, shouldIgnoreEvent("/tmp/post.md~"))
	require.False(t, shouldIgnoreEvent("/tmp/visible.md"))
}

func TestWatchRoots_SkipsMissingDirs(t *testing.T) {
	cfg := previewConfig(t)
	s, err := NewServer(cfg, "127.0.0.1:0")
	require.NoError(t, err)

	roots := s.watchRoots()
	require.Contains(t, roots, cfg.Content.Directory)
	require.NotContains(t, roots, cfg.Layouts.Directory)
}

func TestHandler_ServesSiteMetricsAndHealth(t *testing.T) {
	cfg := previewConfig(t)
	s, err := NewServer(cfg, "127.0.0.1:0")
	require.NoError(t, err)
	s.build(context.Background())

	srv := httptest.NewServer(s.handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/hello/")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	require.Equal(t, true, health["ok"])
	require.NotEmpty(t, health["build_id"])
}

func TestHandler_HealthReportsFailedBuild(t *testing.T) {
	cfg := previewConfig(t)
	s, err := NewServer(cfg, "127.0.0.1:0")
	require.NoError(t, err)

	require.NoError(t, os.Remove(cfg.Assets.CSSEntry))
	s.build(context.Background())

	srv := httptest.NewServer(s.handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
