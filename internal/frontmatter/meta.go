package frontmatter

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alex-schaaf/alex-schaaf.github.io/internal/util/sets"
)

// PostMeta is the typed view of the recognized frontmatter keys.
type PostMeta struct {
	Title       string
	Date        time.Time
	Tags        []string
	Layout      string
	Draft       bool
	Description string
}

// rawMeta mirrors PostMeta with loose types so authoring variations
// (quoted dates, a single tag as a scalar) still decode.
type rawMeta struct {
	Title       string    `yaml:"title"`
	Date        yaml.Node `yaml:"date"`
	Tags        yaml.Node `yaml:"tags"`
	Layout      string    `yaml:"layout"`
	Draft       bool      `yaml:"draft"`
	Description string    `yaml:"description"`
}

// dateFormats are accepted frontmatter date spellings, tried in order.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DecodeMeta parses raw YAML frontmatter into typed post metadata.
func DecodeMeta(frontmatter []byte) (PostMeta, error) {
	var raw rawMeta
	if len(frontmatter) > 0 {
		if err := yaml.Unmarshal(frontmatter, &raw); err != nil {
			return PostMeta{}, err
		}
	}

	meta := PostMeta{
		Title:       raw.Title,
		Layout:      raw.Layout,
		Draft:       raw.Draft,
		Description: raw.Description,
	}

	date, err := decodeDate(&raw.Date)
	if err != nil {
		return PostMeta{}, err
	}
	meta.Date = date

	tags, err := decodeTags(&raw.Tags)
	if err != nil {
		return PostMeta{}, err
	}
	meta.Tags = tags

	return meta, nil
}

func decodeDate(node *yaml.Node) (time.Time, error) {
	if node.IsZero() {
		return time.Time{}, nil
	}

	// yaml.v3 decodes unquoted ISO dates into time.Time directly.
	var ts time.Time
	if err := node.Decode(&ts); err == nil {
		return ts, nil
	}

	var s string
	if err := node.Decode(&s); err != nil {
		return time.Time{}, fmt.Errorf("date is neither a timestamp nor a string")
	}
	for _, layout := range dateFormats {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}

func decodeTags(node *yaml.Node) ([]string, error) {
	if node.IsZero() {
		return nil, nil
	}

	var list []string
	if err := node.Decode(&list); err == nil {
		return dedupe(list), nil
	}

	var single string
	if err := node.Decode(&single); err != nil {
		return nil, fmt.Errorf("tags must be a string or a list of strings")
	}
	if single == "" {
		return nil, nil
	}
	return []string{single}, nil
}

// dedupe removes duplicate tags while preserving order. Tags form a set.
func dedupe(tags []string) []string {
	seen := sets.New[string]()
	out := tags[:0]
	for _, tag := range tags {
		if seen.Has(tag) {
			continue
		}
		seen.Add(tag)
		out = append(out, tag)
	}
	return out
}
