// Package preview serves the generated site locally and rebuilds it
// when content, layouts, or assets change on disk.
package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/config"
	"github.com/alex-schaaf/alex-schaaf.github.io/internal/metrics"
	"github.com/alex-schaaf/alex-schaaf.github.io/internal/site"
	"github.com/alex-schaaf/alex-schaaf.github.io/internal/util/sets"
)

const debounceDelay = 300 * time.Millisecond

// buildStatus tracks the last build result for the health endpoint.
type buildStatus struct {
	mu           sync.RWMutex
	lastError    error
	lastBuildID  string
	hasGoodBuild bool
}

func (bs *buildStatus) setError(err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = err
}

func (bs *buildStatus) setSuccess(buildID string) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = nil
	bs.lastBuildID = buildID
	bs.hasGoodBuild = true
}

func (bs *buildStatus) snapshot() (err error, buildID string, good bool) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.lastError, bs.lastBuildID, bs.hasGoodBuild
}

// Server rebuilds and serves one site.
type Server struct {
	cfg    *config.Config
	gen    *site.Generator
	addr   string
	reg    *prom.Registry
	status buildStatus
}

// NewServer wires a preview server with its own metrics registry. The
// generator reports into that registry so /metrics reflects every
// rebuild.
func NewServer(cfg *config.Config, addr string) (*Server, error) {
	reg := prom.NewRegistry()
	gen, err := site.NewGenerator(cfg, cfg.Output.Directory,
		site.WithRecorder(metrics.NewPrometheusRecorder(reg)))
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, gen: gen, addr: addr, reg: reg}, nil
}

// Run builds once, then serves the output directory and rebuilds on
// filesystem changes until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	s.build(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, root := range s.watchRoots() {
		if err := addDirsRecursive(watcher, root); err != nil {
			return err
		}
	}

	rebuildReq, trigger := newDebouncer()
	go s.rebuildWorker(ctx, rebuildReq)

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	go func() {
		slog.Info("Preview server listening",
			slog.String("addr", ln.Addr().String()),
			slog.String("url", "http://"+ln.Addr().String()))
		if err := httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("Preview server failed", slog.String("error", err.Error()))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return s.shutdown(httpServer)
		case ev, ok := <-watcher.Events:
			if !ok {
				return s.shutdown(httpServer)
			}
			s.handleEvent(watcher, ev, trigger)
		case werr, ok := <-watcher.Errors:
			if !ok {
				return s.shutdown(httpServer)
			}
			slog.Warn("Watcher error", slog.String("error", werr.Error()))
		}
	}
}

func (s *Server) shutdown(httpServer *http.Server) error {
	slog.Info("Shutting down preview server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("Preview shutdown error", slog.String("error", err.Error()))
	}
	return nil
}

// watchRoots lists the directories a change in which requires a
// rebuild. Missing directories are skipped; sites without a layouts
// directory rely on the builtins alone.
func (s *Server) watchRoots() []string {
	candidates := []string{
		s.cfg.Content.Directory,
		s.cfg.Layouts.Directory,
		filepath.Dir(s.cfg.Assets.CSSEntry),
		filepath.Dir(s.cfg.Assets.JSEntry),
	}
	var roots []string
	seen := sets.New[string]()
	for _, c := range candidates {
		if c == "" || seen.Has(c) {
			continue
		}
		seen.Add(c)
		if st, err := os.Stat(c); err == nil && st.IsDir() {
			roots = append(roots, c)
		}
	}
	return roots
}

// handler serves the generated site plus metrics and health endpoints.
func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		lastErr, buildID, good := s.status.snapshot()
		resp := map[string]any{
			"ok":       lastErr == nil && good,
			"build_id": buildID,
		}
		if lastErr != nil {
			resp["error"] = lastErr.Error()
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})
	mux.Handle("/", http.FileServer(http.Dir(s.gen.OutputDir())))
	return mux
}

func newDebouncer() (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounceDelay, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	return rebuildReq, trigger
}

// rebuildWorker serializes rebuilds. The request channel has capacity
// one, so changes arriving mid-build coalesce into a single follow-up
// build.
func (s *Server) rebuildWorker(ctx context.Context, rebuildReq chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-rebuildReq:
			slog.Info("Change detected; rebuilding site")
			s.build(ctx)
		}
	}
}

func (s *Server) build(ctx context.Context) {
	report, err := s.gen.Build(ctx)
	if err != nil {
		slog.Warn("Rebuild failed", slog.String("error", err.Error()))
		s.status.setError(err)
		return
	}
	s.status.setSuccess(report.BuildID)
}

func (s *Server) handleEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(watcher, ev.Name)
		}
	}
	slog.Debug("File change detected",
		slog.String("path", ev.Name),
		slog.String("op", ev.Op.String()))
	trigger()
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				slog.Warn("Watch add failed",
					slog.String("dir", path),
					slog.String("error", err.Error()))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent filters editor temp files and hidden files that
// would otherwise trigger spurious rebuilds.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") {
		return true
	}
	return base == "Thumbs.db"
}
