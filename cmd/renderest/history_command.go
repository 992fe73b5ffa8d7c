package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"renderest/internal/history"
	"renderest/internal/track"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent tracked renders",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cmd.Context(), cfg.Paths.HistoryDB)
			if err != nil {
				return err
			}
			defer store.Close()

			sessions, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tracked renders yet.")
				return nil
			}

			rows := make([][]string, 0, len(sessions))
			for _, s := range sessions {
				rows = append(rows, []string{
					s.CreatedAt.Local().Format("2006-01-02 15:04"),
					s.Scene,
					s.Engine,
					s.Mode,
					s.Outcome,
					fmt.Sprintf("%d", s.Frames),
					track.FormatClock(track.Seconds(s.EstimatedSeconds)),
					track.FormatClock(track.Seconds(s.ActualSeconds)),
					fmt.Sprintf("%.2f", s.FactorAfter),
				})
			}
			headers := []string{"When", "Scene", "Engine", "Mode", "Outcome", "Frames", "Estimated", "Actual", "Factor"}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, 6, 7, 8, 9))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum sessions to list")
	return cmd
}
