// Package splice replaces the text between a TOC marker pair, leaving the
// rest of the document untouched.
package splice

import (
	"fmt"
	"strings"
)

// Default marker tokens. A marker matches only when a line consists of
// exactly the token.
const (
	DefaultBeginMarker = "<!--BEGIN TOC-->"
	DefaultEndMarker   = "<!--END TOC-->"
)

// MarkerError reports a missing or out-of-order marker pair. It is a
// non-fatal condition: callers log it and leave the document unchanged.
type MarkerError struct {
	Reason string
	Line   int // line of the begin marker when relevant, 0 otherwise
}

func (e *MarkerError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (begin marker at line %d)", e.Reason, e.Line)
	}
	return e.Reason
}

// Replace splices block between the first begin marker line and the first
// subsequent end marker line. Both marker lines are preserved verbatim, as
// is every byte outside the span. The input must use LF line endings (the
// document layer normalizes). block may be empty or newline-terminated;
// either way the markers end up on their own lines.
//
// When either marker is missing, or the only end marker precedes the begin
// marker, the document is returned unchanged along with a *MarkerError.
func Replace(doc, block, begin, end string) (string, error) {
	lines := strings.Split(doc, "\n")

	beginIdx := -1
	endIdx := -1
	for i, line := range lines {
		if beginIdx == -1 {
			if line == begin {
				beginIdx = i
			}
			continue
		}
		if line == end {
			endIdx = i
			break
		}
	}

	if beginIdx == -1 {
		return doc, &MarkerError{Reason: "no begin marker found"}
	}
	if endIdx == -1 {
		return doc, &MarkerError{Reason: "no end marker found after begin marker", Line: beginIdx + 1}
	}

	block = strings.TrimSuffix(block, "\n")
	var body []string
	if block != "" {
		body = strings.Split(block, "\n")
	}

	out := make([]string, 0, beginIdx+1+len(body)+len(lines)-endIdx)
	out = append(out, lines[:beginIdx+1]...)
	out = append(out, body...)
	out = append(out, lines[endIdx:]...)
	return strings.Join(out, "\n"), nil
}
