package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"renderest/internal/activity"
	"renderest/internal/calibrate"
	"renderest/internal/estimate"
	"renderest/internal/events"
	"renderest/internal/history"
	"renderest/internal/logging"
	"renderest/internal/scene"
	"renderest/internal/track"
)

func newTrackCommand(ctx *commandContext) *cobra.Command {
	var scenePath string
	var eventsPath string
	var singleFrame bool
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "track",
		Short: "Track a live render with estimates and ETA",
		Long: `Track arms the lifecycle tracker with a pre-render estimate and then
consumes the renderer's event stream (JSON lines on stdin by default),
maintaining progress and ETA. Completed animation renders feed the
auto-calibration loop when enabled.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			sc, err := scene.Load(scenePath)
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			// One tracked render at a time; a second invocation reports busy
			// instead of double-counting frames.
			renderLock := flock.New(filepath.Join(filepath.Dir(cfg.Paths.HistoryDB), "render.lock"))
			locked, err := renderLock.TryLock()
			if err == nil && !locked {
				fmt.Fprintln(cmd.OutOrStdout(), "A render is already being tracked; not starting another.")
				return nil
			}
			if err == nil {
				defer renderLock.Unlock()
			}

			factor := cfg.Estimator.CalibrationFactor
			updater := calibrate.NewUpdater(ctx.configPath, factor, logger)

			tracker := track.New(sc, track.Options{
				Calibration:        factor,
				AutoCalibrate:      cfg.Estimator.AutoCalibrate,
				PersistentProgress: cfg.Render.PersistentProgress,
				Debug:              cfg.Render.Debug,
				Calibrator:         updater,
			}, logger)
			tracker.Start(singleFrame)

			armedEstimate := estimate.Animation(sc, factor)
			if singleFrame {
				armedEstimate = estimate.SingleFrame(sc, factor)
			}

			input, closeInput, err := openEvents(cmd.InOrStdin(), eventsPath)
			if err != nil {
				return err
			}
			defer closeInput()

			out := cmd.OutOrStdout()
			live := shouldColorize(out)
			seenFrames := make(map[int]struct{})

			terminal, streamErr := events.Stream(cmd.Context(), input, logger, func(ev track.Event) {
				if ev.Kind == track.EventFramePre || ev.Kind == track.EventFramePost {
					seenFrames[ev.Frame] = struct{}{}
					sc.Frames.Current = ev.Frame
				}
				tracker.Handle(ev)
				if live && !ev.Kind.Terminal() {
					line := headerLine(tracker.Snapshot(), sc, factor, time.Now())
					fmt.Fprintf(out, "\r\x1b[2K%s", line)
				}
			})
			if live {
				fmt.Fprintln(out)
			}
			if streamErr != nil {
				if !errors.Is(streamErr, io.ErrUnexpectedEOF) {
					return streamErr
				}
				// Stream ended without a terminal event; the renderer died
				// or was killed. Treat it as a cancellation.
				logger.Warn("event stream ended without terminal event; treating as cancel")
				tracker.Handle(track.Event{Kind: track.EventRenderCancel})
				terminal = track.EventRenderCancel
			}

			snap := tracker.Snapshot()
			advisor := activity.Load(cfg.Paths.ActivitiesPath, logger)
			statusPanel(out, snap, sc, factor, advisor.For, time.Now())

			if adj, ok := updater.Last(); ok {
				fmt.Fprintf(out, "Calibration: %.3f -> %.3f (estimated %s, actual %s)\n",
					adj.FactorBefore, adj.FactorAfter,
					track.FormatClock(track.Seconds(adj.EstimatedSeconds)),
					track.FormatClock(track.Seconds(adj.ActualSeconds)))
			}

			if !noHistory {
				recordSession(cmd, cfg.Paths.HistoryDB, logger, sessionRecord{
					scene:     sc,
					terminal:  terminal,
					single:    len(seenFrames) <= 1,
					frames:    len(seenFrames),
					estimated: armedEstimate,
					snap:      snap,
					updater:   updater,
					factor:    factor,
				})
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenePath, "scene", "s", "", "Scene description file (JSON)")
	cmd.Flags().StringVar(&eventsPath, "events", "", "Read events from a file instead of stdin")
	cmd.Flags().BoolVar(&singleFrame, "single", false, "Track a single-frame render instead of an animation")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Skip recording the session in the history database")
	cmd.MarkFlagRequired("scene")
	return cmd
}

func openEvents(stdin io.Reader, path string) (io.Reader, func(), error) {
	if strings.TrimSpace(path) == "" || path == "-" {
		return stdin, func() {}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open events file: %w", err)
	}
	return file, func() { file.Close() }, nil
}

type sessionRecord struct {
	scene     *scene.Scene
	terminal  track.EventKind
	single    bool
	frames    int
	estimated float64
	snap      track.Snapshot
	updater   *calibrate.Updater
	factor    float64
}

func recordSession(cmd *cobra.Command, dbPath string, logger *slog.Logger, rec sessionRecord) {
	store, err := history.Open(cmd.Context(), dbPath)
	if err != nil {
		logger.Warn("history unavailable", logging.Error(err))
		return
	}
	defer store.Close()

	outcome := "completed"
	if rec.terminal == track.EventRenderCancel {
		outcome = "cancelled"
	}
	mode := "animation"
	if rec.single {
		mode = "single"
	}
	factorAfter := rec.factor
	if adj, ok := rec.updater.Last(); ok {
		factorAfter = adj.FactorAfter
	}
	session := history.Session{
		ID:               uuid.NewString(),
		Scene:            rec.scene.Name,
		Engine:           string(rec.scene.Engine),
		Mode:             mode,
		Outcome:          outcome,
		Frames:           rec.frames,
		EstimatedSeconds: rec.estimated,
		ActualSeconds:    rec.snap.TotalTime.Seconds(),
		FactorBefore:     rec.factor,
		FactorAfter:      factorAfter,
	}
	if err := store.Record(cmd.Context(), session); err != nil {
		logger.Warn("record session failed", logging.Error(err))
	}
}
