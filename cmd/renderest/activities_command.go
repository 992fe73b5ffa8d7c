package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"renderest/internal/activity"
	"renderest/internal/track"
)

func newActivitiesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "activities",
		Short: "Show the active activity suggestion table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			advisor := activity.Load(cfg.Paths.ActivitiesPath, ctx.ensureLogger())

			rows := make([][]string, 0, 10)
			for _, entry := range advisor.Entries() {
				rows = append(rows, []string{
					track.FormatClock(track.Seconds(entry.Threshold)),
					entry.Suggestion,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"From", "Suggestion"}, rows))
			return nil
		},
	}
}
