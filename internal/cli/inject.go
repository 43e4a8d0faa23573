package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/mdtoc/internal/document"
	"github.com/dgallion1/mdtoc/internal/parser"
	"github.com/dgallion1/mdtoc/internal/pipeline"
	"github.com/dgallion1/mdtoc/internal/splice"
	"github.com/dgallion1/mdtoc/internal/toc"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	beginMarker string
	endMarker   string
	indentWidth int
	workerCount int

	injectStdout bool
)

var injectCmd = &cobra.Command{
	Use:   "inject <path>...",
	Short: "Splice a fresh TOC between the marker lines",
	Long: `Updates the table of contents of each given markdown file in place.
Directories are walked recursively for .md and .markdown files. Files
without a marker pair are left untouched, as are files whose TOC is
already current.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		log := newLogger()

		if injectStdout {
			if len(args) != 1 {
				return fmt.Errorf("--stdout takes exactly one file")
			}
			return injectToStdout(cmd, log, args[0])
		}

		runner := newRunner(log, false)
		files, err := runner.Collect(args)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no markdown files found")
		}

		sum := runner.Run(cmd.Context(), runner.NewJobs(files))
		fmt.Fprintf(cmd.OutOrStdout(), "updated %d, unchanged %d, no markers %d, failed %d\n",
			sum.Updated, sum.Unchanged, sum.NoMarkers, sum.Failed)
		if sum.Failed > 0 {
			return fmt.Errorf("%d file(s) failed", sum.Failed)
		}
		return nil
	},
}

// injectToStdout prints the spliced result of a single file without
// touching it.
func injectToStdout(cmd *cobra.Command, log *slog.Logger, path string) error {
	if !parser.IsMarkdown(path) {
		return fmt.Errorf("not a markdown file: %s", path)
	}
	store := document.NewStore(afero.NewOsFs())
	doc, err := store.Load(path)
	if err != nil {
		return err
	}

	ext := &parser.MarkdownExtractor{}
	headings, err := ext.Extract(strings.NewReader(doc.Text()))
	if err != nil {
		return fmt.Errorf("extract %s: %w", path, err)
	}

	block := toc.Render(headings, toc.Options{Indent: indentWidth})
	result, err := splice.Replace(doc.Text(), block, beginMarker, endMarker)
	var merr *splice.MarkerError
	if errors.As(err, &merr) {
		log.Warn("no marker pair, document unchanged", "path", path, "detail", merr.Error())
	} else if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), result)
	return nil
}

// newRunner builds a pipeline runner over the real filesystem from the
// shared CLI flags.
func newRunner(log *slog.Logger, dryRun bool) *pipeline.Runner {
	return pipeline.NewRunner(afero.NewOsFs(), pipeline.NewJobStore(time.Hour), log, pipeline.Options{
		BeginMarker: beginMarker,
		EndMarker:   endMarker,
		Indent:      indentWidth,
		Workers:     workerCount,
		DryRun:      dryRun,
	})
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&beginMarker, "begin-marker", splice.DefaultBeginMarker, "line marking the start of the TOC span")
	cmd.Flags().StringVar(&endMarker, "end-marker", splice.DefaultEndMarker, "line marking the end of the TOC span")
	cmd.Flags().IntVar(&indentWidth, "indent", toc.DefaultIndent, "spaces per nesting level")
}

func init() {
	addRenderFlags(injectCmd)
	injectCmd.Flags().IntVar(&workerCount, "workers", 4, "files processed concurrently")
	injectCmd.Flags().BoolVar(&injectStdout, "stdout", false, "print the result of one file instead of writing it")
	rootCmd.AddCommand(injectCmd)
}
