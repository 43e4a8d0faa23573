package pipeline

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/afero"
)

const docWithMarkers = `# Title

<!--BEGIN TOC-->
<!--END TOC-->

## Section A

### Sub A1

## Section B
`

const docUpToDate = `# Title

<!--BEGIN TOC-->
1. [Only](#only)
<!--END TOC-->

## Only
`

func testRunner(t *testing.T, fsys afero.Fs, opts Options) *Runner {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRunner(fsys, NewJobStore(time.Hour), log, opts)
}

func writeFiles(t *testing.T, fsys afero.Fs, files map[string]string) {
	t.Helper()
	for path, content := range files {
		if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
			t.Fatalf("setup %s: %v", path, err)
		}
	}
}

func TestRunner_InjectsTOC(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, map[string]string{"doc.md": docWithMarkers})
	r := testRunner(t, fsys, Options{})

	jobs := r.NewJobs([]string{"doc.md"})
	sum := r.Run(context.Background(), jobs)
	if sum.Updated != 1 {
		t.Fatalf("expected 1 updated, got %+v", sum)
	}

	raw, err := afero.ReadFile(fsys, "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `# Title

<!--BEGIN TOC-->
1. [Section A](#section-a)
    1. [Sub A1](#sub-a1)
2. [Section B](#section-b)
<!--END TOC-->

## Section A

### Sub A1

## Section B
`
	if string(raw) != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, string(raw))
	}
}

func TestRunner_SecondRunUnchanged(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, map[string]string{"doc.md": docWithMarkers})
	r := testRunner(t, fsys, Options{})

	r.Run(context.Background(), r.NewJobs([]string{"doc.md"}))
	sum := r.Run(context.Background(), r.NewJobs([]string{"doc.md"}))
	if sum.Unchanged != 1 || sum.Updated != 0 {
		t.Errorf("expected second run unchanged, got %+v", sum)
	}
}

func TestRunner_NoMarkersIsNotAnError(t *testing.T) {
	fsys := afero.NewMemMapFs()
	original := "# Title\n\n## Section\n"
	writeFiles(t, fsys, map[string]string{"plain.md": original})
	r := testRunner(t, fsys, Options{})

	jobs := r.NewJobs([]string{"plain.md"})
	sum := r.Run(context.Background(), jobs)
	if sum.NoMarkers != 1 || sum.Failed != 0 {
		t.Fatalf("expected no_markers outcome, got %+v", sum)
	}

	raw, _ := afero.ReadFile(fsys, "plain.md")
	if string(raw) != original {
		t.Errorf("document with no markers must be untouched, got %q", string(raw))
	}
}

func TestRunner_DryRunReportsStale(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, map[string]string{
		"stale.md": docWithMarkers,
		"fresh.md": docUpToDate,
	})
	r := testRunner(t, fsys, Options{DryRun: true})

	sum := r.Run(context.Background(), r.NewJobs([]string{"fresh.md", "stale.md"}))
	if sum.Stale != 1 || sum.Unchanged != 1 {
		t.Fatalf("expected 1 stale + 1 unchanged, got %+v", sum)
	}

	// Dry run never writes.
	raw, _ := afero.ReadFile(fsys, "stale.md")
	if string(raw) != docWithMarkers {
		t.Error("dry run must not modify files")
	}
}

func TestRunner_MissingFileFails(t *testing.T) {
	r := testRunner(t, afero.NewMemMapFs(), Options{})
	sum := r.Run(context.Background(), r.NewJobs([]string{"missing.md"}))
	if sum.Failed != 1 {
		t.Errorf("expected 1 failed, got %+v", sum)
	}
}

func TestRunner_NonMarkdownFails(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, map[string]string{"page.html": "<h1>x</h1>"})
	r := testRunner(t, fsys, Options{})
	sum := r.Run(context.Background(), r.NewJobs([]string{"page.html"}))
	if sum.Failed != 1 {
		t.Errorf("expected 1 failed for html inject, got %+v", sum)
	}
}

func TestRunner_BatchAcrossFiles(t *testing.T) {
	fsys := afero.NewMemMapFs()
	files := map[string]string{
		"docs/bash.md":      docWithMarkers,
		"docs/swig.md":      docWithMarkers,
		"docs/plain.md":     "## No markers here\n",
		"docs/.git/hook.md": docWithMarkers,
		"docs/readme.txt":   "not markdown",
	}
	writeFiles(t, fsys, files)
	r := testRunner(t, fsys, Options{Workers: 8})

	collected, err := r.Collect([]string{"docs"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(collected) != 3 {
		t.Fatalf("expected 3 markdown files, got %v", collected)
	}

	sum := r.Run(context.Background(), r.NewJobs(collected))
	if sum.Updated != 2 || sum.NoMarkers != 1 || sum.Failed != 0 {
		t.Errorf("expected 2 updated + 1 no_markers, got %+v", sum)
	}
}

func TestRunner_CanceledContext(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, map[string]string{"doc.md": docWithMarkers})
	r := testRunner(t, fsys, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sum := r.Run(ctx, r.NewJobs([]string{"doc.md"}))
	if sum.Failed != 1 {
		t.Errorf("expected canceled job to fail, got %+v", sum)
	}
}
