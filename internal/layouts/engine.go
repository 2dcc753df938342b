// Package layouts wraps rendered post HTML in named page layouts.
package layouts

import (
	"bytes"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	builderrors "github.com/alex-schaaf/alex-schaaf.github.io/internal/errors"
)

// Site holds the site-wide fields every layout can reference.
type Site struct {
	Title       string
	Description string
	Author      string
	BaseURL     string
}

// PostRef is the listing view of a post, used by index and tag layouts.
type PostRef struct {
	Title       string
	URL         string
	Date        time.Time
	Tags        []string
	Description string
}

// Page is the data a layout executes against.
type Page struct {
	Site        Site
	Title       string
	Description string
	Date        time.Time
	Tags        []string
	URL         string
	Content     template.HTML
	Posts       []PostRef // populated for listing layouts
	Tag         string    // populated for tag layouts
}

// Engine selects a named layout and produces a full page. Layout files in
// the layouts directory override the embedded defaults of the same name.
type Engine struct {
	templates  map[string]*template.Template
	dateFormat string
}

// NewEngine loads layouts from dir (which may not exist) on top of the
// embedded defaults. Recognized extensions select which files load.
func NewEngine(dir string, extensions []string, dateFormat string) (*Engine, error) {
	e := &Engine{
		templates:  make(map[string]*template.Template),
		dateFormat: dateFormat,
	}

	for name, body := range builtinLayouts {
		tmpl, err := e.parse(name, body)
		if err != nil {
			return nil, builderrors.InternalError("parse builtin layout "+name, err)
		}
		e.templates[name] = tmpl
	}

	if dir == "" {
		return e, nil
	}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return e, nil
	}
	if err != nil {
		return nil, builderrors.Wrap(err, builderrors.CategoryLayout, builderrors.SeverityFatal,
			"read layouts directory").WithContext("dir", dir)
	}

	for _, entry := range entries {
		if entry.IsDir() || !recognized(entry.Name(), extensions) {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, builderrors.Wrap(err, builderrors.CategoryLayout, builderrors.SeverityFatal,
				"read layout file").WithContext("file", entry.Name())
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		tmpl, err := e.parse(name, string(raw))
		if err != nil {
			return nil, builderrors.Wrap(err, builderrors.CategoryLayout, builderrors.SeverityFatal,
				"parse layout").WithContext("layout", name)
		}
		e.templates[name] = tmpl
	}

	return e, nil
}

// Has reports whether a layout with the given name is registered.
func (e *Engine) Has(name string) bool {
	_, ok := e.templates[name]
	return ok
}

// Names returns the registered layout names, sorted.
func (e *Engine) Names() []string {
	names := make([]string, 0, len(e.templates))
	for name := range e.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render executes the named layout. An unknown name is a fatal build
// error; the caller attaches the offending post path.
func (e *Engine) Render(name string, page Page) ([]byte, error) {
	tmpl, ok := e.templates[name]
	if !ok {
		return nil, builderrors.UnknownLayout(name, "")
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", page); err != nil {
		return nil, builderrors.LayoutExecError(name, err)
	}
	return buf.Bytes(), nil
}

// parse combines the shared base shell with a layout body. A body that
// carries no define blocks is wrapped as the main block.
func (e *Engine) parse(name, body string) (*template.Template, error) {
	tmpl, err := template.New("base").Funcs(e.funcMap()).Parse(baseLayout)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(body, "{{define") && !strings.Contains(body, "{{ define") {
		body = `{{define "main"}}` + body + `{{end}}`
	}
	return tmpl.Parse(body)
}

func recognized(name string, extensions []string) bool {
	ext := filepath.Ext(name)
	for _, candidate := range extensions {
		if strings.EqualFold(ext, candidate) {
			return true
		}
	}
	return false
}
