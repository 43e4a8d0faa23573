package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/dgallion1/mdtoc/internal/document"
	"github.com/dgallion1/mdtoc/internal/parser"
	"github.com/dgallion1/mdtoc/internal/splice"
	"github.com/dgallion1/mdtoc/internal/toc"
	"github.com/spf13/afero"
)

// Options configures a Runner.
type Options struct {
	BeginMarker string
	EndMarker   string
	Indent      int
	Workers     int
	DryRun      bool // report stale files instead of writing
}

// Runner updates TOCs across many files. Each file's
// load/extract/render/splice cycle is fully self-contained, so files are
// processed concurrently with no shared mutable state beyond the job store.
type Runner struct {
	fs   afero.Fs
	docs *document.Store
	jobs *JobStore
	log  *slog.Logger
	opts Options
}

func NewRunner(fsys afero.Fs, jobs *JobStore, log *slog.Logger, opts Options) *Runner {
	if opts.BeginMarker == "" {
		opts.BeginMarker = splice.DefaultBeginMarker
	}
	if opts.EndMarker == "" {
		opts.EndMarker = splice.DefaultEndMarker
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	return &Runner{
		fs:   fsys,
		docs: document.NewStore(fsys),
		jobs: jobs,
		log:  log,
		opts: opts,
	}
}

// Jobs returns the underlying job store.
func (r *Runner) Jobs() *JobStore {
	return r.jobs
}

// Collect expands paths into the markdown files to process. Directories are
// walked recursively; hidden directories are skipped. Explicit file
// arguments are kept as given so an unsupported extension surfaces as a
// per-file error instead of being silently dropped.
func (r *Runner) Collect(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := r.fs.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = afero.Walk(r.fs, p, func(path string, info fs.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				base := info.Name()
				if base != "." && strings.HasPrefix(base, ".") {
					return fs.SkipDir
				}
				return nil
			}
			if parser.IsMarkdown(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

// NewJobs registers one queued job per file.
func (r *Runner) NewJobs(files []string) []*Job {
	jobs := make([]*Job, 0, len(files))
	for _, f := range files {
		job := NewJob(f)
		r.jobs.Put(job)
		jobs = append(jobs, job)
	}
	return jobs
}

// Summary aggregates job outcomes for one run.
type Summary struct {
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	NoMarkers int `json:"no_markers"`
	Stale     int `json:"stale"`
	Failed    int `json:"failed"`
}

// Run processes jobs with bounded concurrency and returns the summary.
func (r *Runner) Run(ctx context.Context, jobs []*Job) Summary {
	sem := make(chan struct{}, r.opts.Workers)
	var wg sync.WaitGroup

	for _, job := range jobs {
		if ctx.Err() != nil {
			job.SetStatus(StatusFailed, "canceled")
			job.AddError(ctx.Err().Error())
			continue
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(job *Job) {
			defer func() {
				<-sem
				wg.Done()
			}()
			r.Process(job)
		}(job)
	}
	wg.Wait()

	var s Summary
	for _, job := range jobs {
		switch job.Snapshot().Status {
		case StatusUpdated:
			s.Updated++
		case StatusUnchanged:
			s.Unchanged++
		case StatusNoMarkers:
			s.NoMarkers++
		case StatusStale:
			s.Stale++
		default:
			s.Failed++
		}
	}
	return s
}

// Process runs the full load/extract/render/splice/write cycle for one job.
func (r *Runner) Process(job *Job) {
	log := r.log.With("path", job.Path)

	if !parser.IsMarkdown(job.Path) {
		job.AddError(fmt.Sprintf("not a markdown file: %s", job.Path))
		job.SetStatus(StatusFailed, "load")
		log.Error("not a markdown file")
		return
	}

	job.SetStatus(StatusProcessing, "load")
	doc, err := r.docs.Load(job.Path)
	if err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "load")
		log.Error("load failed", "error", err)
		return
	}

	job.SetStatus(StatusProcessing, "extract")
	ext := &parser.MarkdownExtractor{}
	headings, err := ext.Extract(strings.NewReader(doc.Text()))
	if err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "extract")
		log.Error("extract failed", "error", err)
		return
	}
	job.SetCounts(len(headings), toc.Count(headings))

	job.SetStatus(StatusProcessing, "splice")
	block := toc.Render(headings, toc.Options{Indent: r.opts.Indent})
	result, err := splice.Replace(doc.Text(), block, r.opts.BeginMarker, r.opts.EndMarker)
	if err != nil {
		var merr *splice.MarkerError
		if errors.As(err, &merr) {
			job.SetStatus(StatusNoMarkers, "splice")
			log.Warn("no marker pair, document unchanged", "detail", merr.Error())
			return
		}
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "splice")
		log.Error("splice failed", "error", err)
		return
	}

	if result == doc.Text() {
		job.SetStatus(StatusUnchanged, "done")
		return
	}

	if r.opts.DryRun {
		job.SetStatus(StatusStale, "done")
		log.Info("toc is stale")
		return
	}

	job.SetStatus(StatusProcessing, "write")
	if _, err := r.docs.Write(doc, result); err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "write")
		log.Error("write failed", "error", err)
		return
	}
	job.SetStatus(StatusUpdated, "done")
	log.Info("toc updated", "entries", job.Snapshot().Entries)
}
