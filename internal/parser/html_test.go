package parser

import (
	"strings"
	"testing"
)

func TestHTMLExtractor_HeadingTags(t *testing.T) {
	input := `<html><head><title>Doc</title></head><body>
<h1>Title</h1>
<p>Intro.</p>
<h2>Section <em>A</em></h2>
<h3>Sub</h3>
<h2>Section B</h2>
</body></html>`

	p := &HTMLExtractor{}
	hs, err := p.Extract(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		level int
		text  string
		slug  string
	}{
		{1, "Title", "title"},
		{2, "Section A", "section-a"},
		{3, "Sub", "sub"},
		{2, "Section B", "section-b"},
	}
	if len(hs) != len(want) {
		t.Fatalf("expected %d headings, got %d: %+v", len(want), len(hs), hs)
	}
	for i, w := range want {
		if hs[i].Level != w.level || hs[i].Text != w.text || hs[i].Slug != w.slug {
			t.Errorf("heading %d: expected {%d %q %q}, got {%d %q %q}",
				i, w.level, w.text, w.slug, hs[i].Level, hs[i].Text, hs[i].Slug)
		}
	}
}

func TestHTMLExtractor_SkipsNavAndScript(t *testing.T) {
	input := `<body>
<nav><h2>Menu</h2></nav>
<script>var x = "<h2>fake</h2>";</script>
<h2>Content</h2>
</body>`

	p := &HTMLExtractor{}
	hs, err := p.Extract(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hs) != 1 {
		t.Fatalf("expected 1 heading, got %d: %+v", len(hs), hs)
	}
	if hs[0].Text != "Content" {
		t.Errorf("expected %q, got %q", "Content", hs[0].Text)
	}
}

func TestForFile_Dispatch(t *testing.T) {
	if _, err := ForFile("notes.md"); err != nil {
		t.Errorf("expected markdown to be supported: %v", err)
	}
	if _, err := ForFile("notes.html"); err != nil {
		t.Errorf("expected html to be supported: %v", err)
	}
	if _, err := ForFile("notes.pdf"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestIsMarkdown(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"bash.md", true},
		{"swig.markdown", true},
		{"page.html", false},
		{"README", false},
	}
	for _, tt := range tests {
		if got := IsMarkdown(tt.filename); got != tt.want {
			t.Errorf("IsMarkdown(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}
