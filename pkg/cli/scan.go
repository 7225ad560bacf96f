package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glenigan-pipeline/dedup-engine/pkg/report"
)

func newScanCmd(a *app, version string) *cobra.Command {
	var (
		threshold int
		dryRun    bool
		jsonOut   bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run a full deduplication pass over all active projects",
		Long: `Scan snapshots the active project set, generates candidate pairs by
blocking on postcode and town, scores each pair and merges duplicates at or
above the threshold. Use --dry-run to preview without writing anything.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cleanup, err := a.setup(cmd.Context(), version)
			if err != nil {
				return err
			}
			defer cleanup()

			if !cmd.Flags().Changed("threshold") {
				threshold = a.cfg.Dedup.AutoMergeThreshold
			}

			result, err := a.scanService.FullScan(ctx, threshold, dryRun)
			if err != nil {
				return err
			}

			rep := report.FromScan(result)
			if jsonOut {
				out, err := rep.JSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), rep.Text(threshold))
			return nil
		},
	}

	cmd.Flags().IntVar(&threshold, "threshold", 70, "auto-merge threshold (overrides config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would change without merging")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "machine-readable JSON output")

	return cmd
}
