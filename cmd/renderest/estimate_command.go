package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"renderest/internal/activity"
	"renderest/internal/estimate"
	"renderest/internal/scene"
	"renderest/internal/track"
)

func newEstimateCommand(ctx *commandContext) *cobra.Command {
	var scenePath string
	var showBreakdown bool

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate render time for a scene",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			sc, err := scene.Load(scenePath)
			if err != nil {
				return err
			}

			factor := cfg.Estimator.CalibrationFactor
			advisor := activity.Load(cfg.Paths.ActivitiesPath, ctx.ensureLogger())

			singleSeconds := estimate.SingleFrame(sc, factor)
			animSeconds := estimate.Animation(sc, factor)
			frames := sc.Frames.Count()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scene: %s (%s)\n\n", sc.Name, sc.Engine)
			fmt.Fprintf(out, "Single Frame:            %s\n", track.FormatHuman(track.Seconds(singleSeconds)))
			fmt.Fprintf(out, "Animation (%d frames):   %s\n\n", frames, track.FormatHuman(track.Seconds(animSeconds)))
			fmt.Fprintln(out, "While rendering you could:")
			fmt.Fprintf(out, "  frame:     %s\n", advisor.For(singleSeconds))
			fmt.Fprintf(out, "  animation: %s\n", advisor.For(animSeconds))

			if showBreakdown || cfg.Estimator.ShowBreakdown {
				rows := make([][]string, 0, 16)
				for _, row := range estimate.Breakdown(sc) {
					rows = append(rows, []string{row.Label, row.Value})
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderTable([]string{"Factor", "Value"}, rows, 2))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenePath, "scene", "s", "", "Scene description file (JSON)")
	cmd.Flags().BoolVar(&showBreakdown, "breakdown", false, "Show the estimation factor breakdown")
	cmd.MarkFlagRequired("scene")
	return cmd
}
