package layouts

import (
	"html/template"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

func (e *Engine) funcMap() template.FuncMap {
	return template.FuncMap{
		"formatDate": e.formatDate,
		"titleCase":  titleCaser.String,
		"slugify":    Slugify,
	}
}

// Slugify makes a tag name URL-safe; tag pages live under /tags/<slug>/.
func Slugify(value string) string {
	s, err := slug.Normalize(value)
	if err != nil || s == "" {
		return value
	}
	return s
}

// formatDate renders a date for display. The format is a token spec
// (YYYY, MMMM, MMM, MM, M, DD, D); an empty spec falls back to the
// configured site default. Unrecognized text passes through verbatim, so
// a bad spec degrades to a readable string rather than failing.
func (e *Engine) formatDate(t time.Time, spec string) string {
	if t.IsZero() {
		return ""
	}
	if spec == "" {
		spec = e.dateFormat
	}
	if spec == "" {
		return t.Format("January 2, 2006")
	}
	return FormatTokens(t, spec)
}

// dateTokens maps display tokens to Go reference-time layouts, longest
// token first so MMMM does not match as four Ms.
var dateTokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// FormatTokens expands a token date spec against t.
func FormatTokens(t time.Time, spec string) string {
	var sb strings.Builder
	for i := 0; i < len(spec); {
		matched := false
		for _, tok := range dateTokens {
			if strings.HasPrefix(spec[i:], tok.token) {
				sb.WriteString(t.Format(tok.layout))
				i += len(tok.token)
				matched = true
				break
			}
		}
		if !matched {
			sb.WriteByte(spec[i])
			i++
		}
	}
	return sb.String()
}
