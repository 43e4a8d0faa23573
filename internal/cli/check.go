package cli

import (
	"fmt"

	"github.com/dgallion1/mdtoc/internal/pipeline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <path>...",
	Short: "Verify that TOCs are current without modifying files",
	Long: `Checks whether inject would change any of the given files. Intended
for CI: exits non-zero when a file's table of contents is stale.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		log := newLogger()

		runner := newRunner(log, true)
		files, err := runner.Collect(args)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no markdown files found")
		}

		jobs := runner.NewJobs(files)
		sum := runner.Run(cmd.Context(), jobs)

		out := cmd.OutOrStdout()
		for _, job := range jobs {
			snap := job.Snapshot()
			switch snap.Status {
			case pipeline.StatusUnchanged:
				fmt.Fprintf(out, "%s  %s\n", color.GreenString("ok   "), snap.Path)
			case pipeline.StatusStale:
				fmt.Fprintf(out, "%s  %s\n", color.YellowString("stale"), snap.Path)
			case pipeline.StatusNoMarkers:
				fmt.Fprintf(out, "%s  %s\n", color.New(color.Faint).Sprint("skip "), snap.Path)
			default:
				detail := ""
				if len(snap.Errors) > 0 {
					detail = " (" + snap.Errors[0] + ")"
				}
				fmt.Fprintf(out, "%s  %s%s\n", color.RedString("error"), snap.Path, detail)
			}
		}

		if sum.Stale > 0 || sum.Failed > 0 {
			return fmt.Errorf("%d stale, %d failed", sum.Stale, sum.Failed)
		}
		return nil
	},
}

func init() {
	addRenderFlags(checkCmd)
	checkCmd.Flags().IntVar(&workerCount, "workers", 4, "files processed concurrently")
	rootCmd.AddCommand(checkCmd)
}
