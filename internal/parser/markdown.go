package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/mdtoc/internal/heading"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor reads headings from markdown using goldmark.
//
// Only ATX headings count (a run of 1-6 # characters followed by whitespace).
// Setext underline headings and heading-like lines inside fenced code blocks
// are excluded; goldmark's block parser already suppresses the latter, and an
// explicit source check filters the former.
type MarkdownExtractor struct{}

func (p *MarkdownExtractor) Extract(r io.Reader) ([]heading.Heading, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	dedupe := heading.NewDeduper()
	var headings []heading.Heading

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Lines().Len() == 0 {
			// Bare marker like "##" with no title text.
			return ast.WalkSkipChildren, nil
		}
		seg := h.Lines().At(0)
		if !isATXLine(src, seg.Start) {
			return ast.WalkSkipChildren, nil
		}
		title := strings.TrimSpace(inlineText(h, src))
		if title == "" {
			return ast.WalkSkipChildren, nil
		}

		headings = append(headings, heading.Heading{
			Level: h.Level,
			Text:  title,
			Slug:  dedupe.Unique(heading.Slugify(title)),
			Line:  bytes.Count(src[:seg.Start], []byte("\n")) + 1,
		})
		return ast.WalkSkipChildren, nil
	})

	return headings, nil
}

// inlineText flattens the inline children of a node to plain text, dropping
// markup like emphasis markers, link targets and code span backticks.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		} else {
			buf.WriteString(inlineText(c, src))
		}
	}
	return buf.String()
}

// isATXLine reports whether the source line containing offset starts with a
// # run (at most 3 leading spaces), distinguishing ATX headings from setext
// underline headings whose text segment starts mid-paragraph.
func isATXLine(src []byte, offset int) bool {
	start := offset
	for start > 0 && src[start-1] != '\n' {
		start--
	}
	line := src[start:offset]
	spaces := 0
	for _, b := range line {
		switch b {
		case ' ':
			spaces++
			if spaces > 3 {
				return false
			}
		case '#':
			return true
		default:
			return false
		}
	}
	return false
}
