package linkverify

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/retry"
)

// BrokenLink describes one failed reference.
type BrokenLink struct {
	Page   string // Output-relative page the reference appears on.
	URL    string // The raw reference.
	Tag    string
	Reason string
}

// Report is the result of checking one output tree.
type Report struct {
	Pages  int
	Links  int
	Broken []BrokenLink
}

// Options tune a Checker.
type Options struct {
	// External enables probing external links over HTTP.
	External bool
	// Timeout bounds each external probe.
	Timeout time.Duration
	// MaxConcurrent bounds parallel external probes.
	MaxConcurrent int
	// Retry governs re-probing of transient failures (network errors
	// and 5xx responses).
	Retry retry.Policy
}

// Checker verifies the links of a generated site.
type Checker struct {
	outDir  string
	baseURL string
	opts    Options
	client  *http.Client
}

// NewChecker builds a checker over the given output directory.
func NewChecker(outDir, baseURL string, opts Options) *Checker {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 8
	}
	if opts.Retry.Validate() != nil {
		opts.Retry = retry.NewPolicy(retry.BackoffFixed, 500*time.Millisecond, 2*time.Second, 1)
	}
	return &Checker{
		outDir:  outDir,
		baseURL: baseURL,
		opts:    opts,
		client:  &http.Client{Timeout: opts.Timeout},
	}
}

// Run walks every generated HTML page and verifies its references.
// Internal links resolve against the output tree, fragments against the
// ids of the target page. The returned report is non-nil even on error.
func (c *Checker) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	pages, err := c.findPages()
	if err != nil {
		return report, err
	}
	report.Pages = len(pages)

	base, _ := url.Parse(c.baseURL)

	var externals []pageLink
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		links, err := ExtractLinks(filepath.Join(c.outDir, filepath.FromSlash(page)), c.baseURL)
		if err != nil {
			report.Broken = append(report.Broken, BrokenLink{
				Page: page, Reason: err.Error(),
			})
			continue
		}

		for _, link := range links {
			if !shouldCheck(link) {
				continue
			}
			report.Links++
			if link.Internal {
				if reason := c.checkInternal(page, link, base); reason != "" {
					report.Broken = append(report.Broken, BrokenLink{
						Page: page, URL: link.URL, Tag: link.Tag, Reason: reason,
					})
				}
				continue
			}
			if c.opts.External {
				externals = append(externals, pageLink{page: page, link: link})
			}
		}
	}

	if len(externals) > 0 {
		report.Broken = append(report.Broken, c.checkExternals(ctx, externals)...)
	}

	sort.Slice(report.Broken, func(i, j int) bool {
		if report.Broken[i].Page != report.Broken[j].Page {
			return report.Broken[i].Page < report.Broken[j].Page
		}
		return report.Broken[i].URL < report.Broken[j].URL
	})
	return report, ctx.Err()
}

type pageLink struct {
	page string
	link *Link
}

// findPages lists every .html file relative to the output dir.
func (c *Checker) findPages() ([]string, error) {
	var pages []string
	err := filepath.WalkDir(c.outDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}
		rel, err := filepath.Rel(c.outDir, p)
		if err != nil {
			return err
		}
		pages = append(pages, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(pages)
	return pages, err
}

// checkInternal resolves a site-relative reference against the output
// tree. Returns an empty string when the target exists.
func (c *Checker) checkInternal(page string, link *Link, base *url.URL) string {
	raw := link.URL
	if strings.HasPrefix(raw, "mailto:") || strings.HasPrefix(raw, "tel:") {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Sprintf("unparsable reference: %v", err)
	}

	target := u.Path
	if base != nil && base.Path != "" && base.Path != "/" {
		target = strings.TrimPrefix(target, strings.TrimSuffix(base.Path, "/"))
	}

	// Same-page fragment.
	if target == "" && u.Fragment != "" {
		return c.checkFragment(page, u.Fragment)
	}
	if target == "" {
		return ""
	}

	resolved := c.resolveTarget(page, target)
	if resolved == "" {
		return "target not found in output"
	}
	if u.Fragment != "" && strings.HasSuffix(resolved, ".html") {
		return c.checkFragment(resolved, u.Fragment)
	}
	return ""
}

// resolveTarget maps a URL path to an output-relative file, trying the
// path itself and its directory index. Returns "" when nothing matches.
func (c *Checker) resolveTarget(page, target string) string {
	var rel string
	if strings.HasPrefix(target, "/") {
		rel = strings.TrimPrefix(target, "/")
	} else {
		rel = path.Join(path.Dir(page), target)
	}
	rel = path.Clean(rel)
	if rel == "." {
		rel = ""
	}

	candidates := []string{rel, path.Join(rel, "index.html")}
	for _, cand := range candidates {
		if cand == "" {
			continue
		}
		full := filepath.Join(c.outDir, filepath.FromSlash(cand))
		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			continue
		}
		return cand
	}
	return ""
}

// checkFragment verifies that the target page declares the given id.
func (c *Checker) checkFragment(page, fragment string) string {
	ids, err := c.pageIDs(page)
	if err != nil {
		return fmt.Sprintf("read fragment target: %v", err)
	}
	if _, ok := ids[fragment]; !ok {
		return fmt.Sprintf("missing fragment #%s", fragment)
	}
	return ""
}

func (c *Checker) pageIDs(page string) (map[string]struct{}, error) {
	f, err := os.Open(filepath.Join(c.outDir, filepath.FromSlash(page)))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]struct{})
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if id := attr(n, "id"); id != "" {
				ids[id] = struct{}{}
			}
			if n.Data == "a" {
				if name := attr(n, "name"); name != "" {
					ids[name] = struct{}{}
				}
			}
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	walk(doc)
	return ids, nil
}

// checkExternals probes external links concurrently with a bounded
// worker count, deduplicating by URL.
func (c *Checker) checkExternals(ctx context.Context, links []pageLink) []BrokenLink {
	type result struct {
		url    string
		reason string
	}

	byURL := make(map[string][]pageLink)
	for _, pl := range links {
		byURL[pl.link.URL] = append(byURL[pl.link.URL], pl)
	}

	sem := make(chan struct{}, c.opts.MaxConcurrent)
	results := make(chan result, len(byURL))
	var wg sync.WaitGroup
	for u := range byURL {
		if ctx.Err() != nil {
			break
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			defer func() { <-sem }()
			results <- result{url: u, reason: c.probe(ctx, u)}
		}(u)
	}
	wg.Wait()
	close(results)

	var broken []BrokenLink
	for res := range results {
		if res.reason == "" {
			continue
		}
		for _, pl := range byURL[res.url] {
			broken = append(broken, BrokenLink{
				Page: pl.page, URL: res.url, Tag: pl.link.Tag, Reason: res.reason,
			})
		}
	}
	return broken
}

// probe verifies one external URL, retrying transient failures per the
// configured backoff policy. 4xx responses other than auth challenges
// are definitive: no retry.
func (c *Checker) probe(ctx context.Context, rawURL string) string {
	for attempt := 0; ; attempt++ {
		reason, transient := c.probeOnce(ctx, rawURL)
		if reason == "" || !transient || attempt >= c.opts.Retry.MaxRetries {
			return reason
		}
		select {
		case <-ctx.Done():
			return reason
		case <-time.After(c.opts.Retry.Delay(attempt + 1)):
		}
	}
}

// probeOnce issues a HEAD request, falling back to GET when the server
// rejects HEAD. Auth challenges count as reachable.
func (c *Checker) probeOnce(ctx context.Context, rawURL string) (reason string, transient bool) {
	status, err := c.request(ctx, http.MethodHead, rawURL)
	if err == nil && status == http.StatusMethodNotAllowed {
		status, err = c.request(ctx, http.MethodGet, rawURL)
	}
	if err != nil {
		return err.Error(), true
	}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", false
	}
	if status >= 500 {
		return fmt.Sprintf("HTTP %d", status), true
	}
	if status >= 400 {
		return fmt.Sprintf("HTTP %d", status), false
	}
	return "", false
}

func (c *Checker) request(ctx context.Context, method, rawURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", "blogbuilder-linkcheck/1.0")
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

// Log writes the report through the structured logger.
func (r *Report) Log() {
	if len(r.Broken) == 0 {
		slog.Info("Link check passed",
			slog.Int("pages", r.Pages),
			slog.Int("links", r.Links))
		return
	}
	for _, b := range r.Broken {
		slog.Warn("Broken link",
			slog.String("page", b.Page),
			slog.String("url", b.URL),
			slog.String("reason", b.Reason))
	}
	slog.Warn("Link check found problems",
		slog.Int("pages", r.Pages),
		slog.Int("links", r.Links),
		slog.Int("broken", len(r.Broken)))
}
