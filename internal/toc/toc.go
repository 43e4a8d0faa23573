// Package toc renders an ordered heading sequence as a nested numbered list
// with anchor links.
package toc

import (
	"fmt"
	"strings"

	"github.com/dgallion1/mdtoc/internal/heading"
)

// DefaultIndent is the indentation width per nesting level.
const DefaultIndent = 4

// Options controls rendering.
type Options struct {
	// Indent is the number of spaces per nesting level (default 4).
	Indent int
}

// Render serializes headings into a numbered markdown list.
//
// Level-1 headings are the document's own title and are excluded; numbering
// starts at the shallowest included level. Sibling numbering restarts at 1
// within each nesting level. Source levels that jump by more than one step
// nest exactly one level deeper than the previous entry, so irregular
// documents never produce a skipped depth or numbering gap.
func Render(headings []heading.Heading, opts Options) string {
	indent := opts.Indent
	if indent <= 0 {
		indent = DefaultIndent
	}

	type frame struct {
		level int // source heading level
		depth int // rendered nesting depth
	}
	var stack []frame
	var counters []int
	var b strings.Builder

	for _, h := range headings {
		if h.Level <= 1 {
			continue
		}
		for len(stack) > 0 && stack[len(stack)-1].level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		depth := 0
		if len(stack) > 0 {
			depth = stack[len(stack)-1].depth + 1
		}
		stack = append(stack, frame{level: h.Level, depth: depth})

		if depth == len(counters) {
			counters = append(counters, 0)
		}
		counters = counters[:depth+1]
		counters[depth]++

		b.WriteString(strings.Repeat(" ", depth*indent))
		fmt.Fprintf(&b, "%d. [%s](#%s)\n", counters[depth], h.Text, h.Slug)
	}

	return b.String()
}

// Count returns the number of entries Render would produce.
func Count(headings []heading.Heading) int {
	n := 0
	for _, h := range headings {
		if h.Level > 1 {
			n++
		}
	}
	return n
}
