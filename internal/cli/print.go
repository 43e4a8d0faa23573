package cli

import (
	"bytes"
	"fmt"

	"github.com/dgallion1/mdtoc/internal/parser"
	"github.com/dgallion1/mdtoc/internal/toc"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var printCmd = &cobra.Command{
	Use:   "print <file>",
	Short: "Render the TOC block for a file to stdout",
	Long: `Prints the table of contents that inject would splice into the file.
Accepts markdown files and, read-only, HTML files (headings taken from
h1-h6 tags).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		ext, err := parser.ForFile(args[0])
		if err != nil {
			return err
		}
		raw, err := afero.ReadFile(afero.NewOsFs(), args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		headings, err := ext.Extract(bytes.NewReader(raw))
		if err != nil {
			return fmt.Errorf("extract %s: %w", args[0], err)
		}

		fmt.Fprint(cmd.OutOrStdout(), toc.Render(headings, toc.Options{Indent: indentWidth}))
		return nil
	},
}

func init() {
	printCmd.Flags().IntVar(&indentWidth, "indent", toc.DefaultIndent, "spaces per nesting level")
	rootCmd.AddCommand(printCmd)
}
