// Package cli implements the mdtoc command line interface.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mdtoc",
	Short: "Maintain generated tables of contents in markdown files",
	Long: `mdtoc keeps the table of contents of structured markdown reference
files up to date. A document opts in by carrying a marker pair:

    <!--BEGIN TOC-->
    <!--END TOC-->

mdtoc extracts the document's headings, renders a nested numbered list with
anchor links, and replaces the text between the markers. Documents without
markers are left untouched.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// newLogger builds the CLI logger. Warnings (e.g. missing markers) are
// always shown; debug detail is opt-in.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
