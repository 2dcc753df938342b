// Package linkverify checks the links in a generated site. Internal
// links are resolved against the output tree on disk; external links
// can optionally be probed over HTTP.
package linkverify

import (
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	builderrors "github.com/alex-schaaf/alex-schaaf.github.io/internal/errors"
)

// Link is a single reference extracted from a generated HTML page.
type Link struct {
	URL       string // Raw href/src value.
	Text      string // Link text or alt text.
	Tag       string // Source element (a, img, script, link).
	Attribute string // Attribute the value came from.
	Internal  bool   // True for site-relative references.
}

// ExtractLinks extracts all references from an HTML file.
func ExtractLinks(htmlPath, baseURL string) ([]*Link, error) {
	f, err := os.Open(filepath.Clean(htmlPath))
	if err != nil {
		return nil, builderrors.Wrap(err, builderrors.CategoryFileSystem, builderrors.SeverityError,
			"open generated page").WithContext("path", htmlPath)
	}
	defer func() {
		_ = f.Close()
	}()
	return ExtractLinksFromReader(f, baseURL)
}

// ExtractLinksFromReader extracts all references from HTML content.
func ExtractLinksFromReader(r io.Reader, baseURL string) ([]*Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, builderrors.Wrap(err, builderrors.CategoryValidation, builderrors.SeverityError,
			"parse generated page")
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, builderrors.Wrap(err, builderrors.CategoryValidation, builderrors.SeverityError,
			"invalid base URL").WithContext("base_url", baseURL)
	}

	var links []*Link
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			collectElement(n, base, &links)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

func collectElement(n *html.Node, base *url.URL, links *[]*Link) {
	switch n.Data {
	case "a":
		if href := attr(n, "href"); href != "" {
			*links = append(*links, &Link{
				URL:       href,
				Text:      nodeText(n),
				Tag:       "a",
				Attribute: "href",
				Internal:  isInternal(href, base),
			})
		}
	case "img":
		if src := attr(n, "src"); src != "" {
			*links = append(*links, &Link{
				URL:       src,
				Text:      attr(n, "alt"),
				Tag:       "img",
				Attribute: "src",
				Internal:  isInternal(src, base),
			})
		}
	case "script":
		if src := attr(n, "src"); src != "" {
			*links = append(*links, &Link{
				URL:       src,
				Tag:       "script",
				Attribute: "src",
				Internal:  isInternal(src, base),
			})
		}
	case "link":
		if href := attr(n, "href"); href != "" {
			*links = append(*links, &Link{
				URL:       href,
				Text:      attr(n, "rel"),
				Tag:       "link",
				Attribute: "href",
				Internal:  isInternal(href, base),
			})
		}
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return strings.TrimSpace(b.String())
}

// isInternal reports whether a reference points into this site.
func isInternal(link string, base *url.URL) bool {
	if strings.HasPrefix(link, "#") ||
		strings.HasPrefix(link, "mailto:") ||
		strings.HasPrefix(link, "tel:") {
		return true
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	if u.Scheme == "" || u.Host == "" {
		return true
	}
	return base != nil && u.Host == base.Host
}

// shouldCheck filters references that carry no verifiable target.
func shouldCheck(link *Link) bool {
	switch {
	case link.URL == "":
		return false
	case strings.HasPrefix(link.URL, "mailto:"),
		strings.HasPrefix(link.URL, "tel:"),
		strings.HasPrefix(link.URL, "javascript:"),
		strings.HasPrefix(link.URL, "data:"):
		return false
	}
	return true
}
