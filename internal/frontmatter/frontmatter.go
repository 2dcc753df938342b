// Package frontmatter splits and parses the YAML metadata block that
// prefixes every post.
package frontmatter

import (
	"bytes"
	"errors"
)

// ErrMissingClosingDelimiter indicates a document opened a frontmatter
// block but never closed it.
var ErrMissingClosingDelimiter = errors.New("frontmatter opening delimiter found but closing delimiter is missing")

// Split separates the ----delimited YAML frontmatter from the Markdown
// body. A document without a leading delimiter passes through
// untouched, with had false and body the full input. LF and CRLF line
// endings are both accepted.
func Split(content []byte) (frontmatter, body []byte, had bool, err error) {
	nl := detectNewline(content)
	delim := []byte("---" + nl)
	if !bytes.HasPrefix(content, delim) {
		return nil, content, false, nil
	}

	rest := content[len(delim):]
	if bytes.HasPrefix(rest, delim) {
		// Empty frontmatter block.
		return []byte{}, rest[len(delim):], true, nil
	}

	end := bytes.Index(rest, []byte(nl+"---"+nl))
	if end < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	return rest[:end+len(nl)], rest[end+len(nl)+len(delim):], true, nil
}

// detectNewline reports the document's line ending based on its first
// newline.
func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
