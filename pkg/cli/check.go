package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glenigan-pipeline/dedup-engine/pkg/apperrors"
	"github.com/glenigan-pipeline/dedup-engine/pkg/report"
)

func newCheckCmd(a *app, version string) *cobra.Command {
	var (
		threshold int
		jsonOut   bool
	)

	cmd := &cobra.Command{
		Use:   "check <project-id>",
		Short: "Score one project against all active projects",
		Long: `Check is the ingestion-time lookup path: it scores a single project
against every other active project and lists matches above the noise floor,
strongest first. Matches at or above the threshold would auto-merge.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID := args[0]

			ctx, cleanup, err := a.setup(cmd.Context(), version)
			if err != nil {
				return err
			}
			defer cleanup()

			if !cmd.Flags().Changed("threshold") {
				threshold = a.cfg.Dedup.AutoMergeThreshold
			}

			_, matches, err := a.scanService.CheckProject(ctx, projectID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return fmt.Errorf("project %s not found", projectID)
				}
				return err
			}

			if jsonOut {
				out, err := report.MatchesJSON(matches)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), report.MatchesText(projectID, matches, threshold))
			return nil
		},
	}

	cmd.Flags().IntVar(&threshold, "threshold", 70, "auto-merge threshold (overrides config)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "machine-readable JSON output")

	return cmd
}
