package heading

import "testing"

func TestSlugify_Basic(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Introduction", "introduction"},
		{"Redirection Operators", "redirection-operators"},
		{"Foo", "foo"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Already-hyphenated title", "already-hyphenated-title"},
		{"Special != characters?", "special-characters"},
		{"Numbers 123 stay", "numbers-123-stay"},
		{"UPPER Case", "upper-case"},
		{"Tabs\there", "tabs-here"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugify_CollapsesHyphenRuns(t *testing.T) {
	if got := Slugify("a -- b"); got != "a-b" {
		t.Errorf("expected %q, got %q", "a-b", got)
	}
}

func TestDeduper_FirstOccurrenceUnchanged(t *testing.T) {
	d := NewDeduper()
	if got := d.Unique("foo"); got != "foo" {
		t.Errorf("expected %q, got %q", "foo", got)
	}
}

func TestDeduper_DuplicatesGetNumericSuffix(t *testing.T) {
	d := NewDeduper()
	want := []string{"foo", "foo-1", "foo-2"}
	for i, w := range want {
		if got := d.Unique("foo"); got != w {
			t.Errorf("occurrence %d: expected %q, got %q", i, w, got)
		}
	}
}

func TestDeduper_SuffixCollisionWithLiteralSlug(t *testing.T) {
	d := NewDeduper()
	d.Unique("foo")
	d.Unique("foo-1") // a heading literally titled "Foo 1"
	if got := d.Unique("foo"); got != "foo-2" {
		t.Errorf("expected %q, got %q", "foo-2", got)
	}
}

func TestDeduper_EmptySlugFallsBack(t *testing.T) {
	d := NewDeduper()
	if got := d.Unique(""); got != "section" {
		t.Errorf("expected %q, got %q", "section", got)
	}
	if got := d.Unique(""); got != "section-1" {
		t.Errorf("expected %q, got %q", "section-1", got)
	}
}
