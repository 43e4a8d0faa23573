package heading

import (
	"fmt"
	"regexp"
	"strings"
)

// Heading is a single section heading extracted from a document.
type Heading struct {
	Level int    `json:"level"` // 1-6, from the leading # count (or <hN> tag)
	Text  string `json:"text"`  // title with inline markup reduced to plain text
	Slug  string `json:"slug"`  // URL-safe anchor, unique within the document
	Line  int    `json:"line"`  // 1-based source line (0 if unknown)
}

var (
	slugSpaces  = regexp.MustCompile(`[ \t]+`)
	slugInvalid = regexp.MustCompile(`[^a-z0-9-]`)
	slugDashes  = regexp.MustCompile(`-{2,}`)
)

// Slugify converts a heading title to a URL-safe anchor: lowercased, spaces
// to hyphens, other non-alphanumeric characters stripped, hyphen runs
// collapsed.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Deduper resolves slug collisions within a single document by appending
// numeric suffixes (-1, -2, ...) in order of first appearance.
type Deduper struct {
	counts map[string]int
}

func NewDeduper() *Deduper {
	return &Deduper{counts: make(map[string]int)}
}

// Unique returns base unchanged on first sight, and base-N for subsequent
// duplicates. Suffixed slugs that would collide with a slug already handed
// out are skipped, so the result is always document-unique.
func (d *Deduper) Unique(base string) string {
	if base == "" {
		base = "section"
	}
	n, seen := d.counts[base]
	if !seen {
		d.counts[base] = 0
		return base
	}
	for {
		n++
		candidate := fmt.Sprintf("%s-%d", base, n)
		if _, taken := d.counts[candidate]; !taken {
			d.counts[base] = n
			d.counts[candidate] = 0
			return candidate
		}
	}
}
