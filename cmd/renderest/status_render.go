package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"renderest/internal/estimate"
	"renderest/internal/scene"
	"renderest/internal/track"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// headerLine composes the compact always-visible status: progress bar plus
// ETA or elapsed, depending on the render mode and phase.
func headerLine(snap track.Snapshot, sc *scene.Scene, calibration float64, now time.Time) string {
	if !snap.Rendering {
		return snap.ETAHuman
	}

	switch {
	case snap.SingleFrame:
		singleEst := estimate.SingleFrameDuration(sc, calibration)
		if !snap.SingleStart.IsZero() {
			elapsed := now.Sub(snap.SingleStart)
			remaining := singleEst - elapsed
			if remaining < 0 {
				remaining = 0
			}
			return "Remaining: " + track.FormatClock(remaining)
		}
		return "Est: " + track.FormatHuman(singleEst)
	case snap.HasFirstFrame:
		currentIndex := sc.Frames.Current - snap.FirstFrame + 1
		totalFrames := sc.Frames.End - snap.FirstFrame + 1
		bar := track.ProgressBar(currentIndex, totalFrames)
		if currentIndex <= 1 {
			// No completed frame yet; the formula estimate is all we have.
			animEst := estimate.AnimationDuration(sc, calibration)
			return bar + " ETA: " + track.FormatHuman(animEst)
		}
		return bar + " ETA: " + snap.ETAHuman
	default:
		return "Starting render..."
	}
}

// statusPanel composes the detailed render status block.
func statusPanel(w io.Writer, snap track.Snapshot, sc *scene.Scene, calibration float64, advise func(float64) string, now time.Time) {
	colorize := shouldColorize(w)

	switch {
	case snap.Rendering && snap.SingleFrame:
		singleEst := estimate.SingleFrame(sc, calibration)
		fmt.Fprintf(w, "Estimated: %s\n", track.FormatHuman(track.Seconds(singleEst)))
		fmt.Fprintln(w, statusText("RENDERING FRAME", ansiYellow, colorize))
		if !snap.SingleStart.IsZero() {
			elapsed := now.Sub(snap.SingleStart)
			remaining := track.Seconds(singleEst) - elapsed
			if remaining < 0 {
				remaining = 0
			}
			fmt.Fprintf(w, "Remaining: %s\n", track.FormatClock(remaining))
			fmt.Fprintf(w, "Elapsed:   %s\n", track.FormatClock(elapsed))
			fmt.Fprintf(w, "While you wait: %s\n", advise(remaining.Seconds()))
		}
	case snap.Rendering && snap.HasFirstFrame:
		currentIndex := sc.Frames.Current - snap.FirstFrame + 1
		totalFrames := sc.Frames.End - snap.FirstFrame + 1
		fmt.Fprintln(w, statusText(fmt.Sprintf("RENDERING FRAME %d OF %d", currentIndex, totalFrames), ansiYellow, colorize))
		if currentIndex <= 1 {
			animEst := estimate.Animation(sc, calibration)
			fmt.Fprintf(w, "Estimated: %s\n", track.FormatHuman(track.Seconds(animEst)))
			if !snap.TotalStart.IsZero() {
				fmt.Fprintf(w, "Elapsed:   %s\n", track.FormatClock(now.Sub(snap.TotalStart)))
			}
			fmt.Fprintf(w, "While you wait: %s\n", advise(animEst))
		} else {
			fmt.Fprintf(w, "ETA: [%s]\n", snap.ETAClock)
			if snap.LastFrameTime > 0 {
				remainingFrames := sc.Frames.End - sc.Frames.Current
				remainingTime := time.Duration(remainingFrames) * snap.LastFrameTime
				fmt.Fprintf(w, "While you wait: %s\n", advise(remainingTime.Seconds()))
			}
		}
	case snap.Rendering:
		fmt.Fprintln(w, statusText("Starting...", ansiYellow, colorize))
	default:
		switch snap.ETAHuman {
		case track.StatusComplete:
			fmt.Fprintln(w, statusText(track.StatusComplete, ansiGreen, colorize))
		case track.StatusStopped:
			fmt.Fprintln(w, statusText(track.StatusStopped, ansiRed, colorize))
		case track.StatusAwaiting:
			fmt.Fprintln(w, "STATUS: Ready to render")
		default:
			fmt.Fprintf(w, "STATUS: %s\n", snap.ETAHuman)
		}
	}

	if snap.HasTotal {
		fmt.Fprintf(w, "Total Time:     %s\n", track.FormatClock(snap.TotalTime))
	}
	if snap.HasAvg {
		fmt.Fprintf(w, "Avg Time/Frame: %s\n", track.FormatClock(snap.AvgTime))
	}
}

func statusText(message, color string, colorize bool) string {
	line := "STATUS: " + message
	if colorize && color != "" {
		return color + line + ansiReset
	}
	return line
}
