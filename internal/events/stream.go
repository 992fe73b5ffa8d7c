package events

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"renderest/internal/logging"
	"renderest/internal/track"
)

// Maximum accepted line length. Renderer logs can contain long lines; events
// themselves are tiny.
const maxLineBytes = 64 * 1024

type wireEvent struct {
	Event string    `json:"event"`
	Frame int       `json:"frame"`
	At    time.Time `json:"at"`
}

// Parse decodes a single event line.
func Parse(line []byte) (track.Event, error) {
	var wire wireEvent
	if err := json.Unmarshal(line, &wire); err != nil {
		return track.Event{}, fmt.Errorf("decode event: %w", err)
	}
	kind, err := kindFromString(wire.Event)
	if err != nil {
		return track.Event{}, err
	}
	return track.Event{Kind: kind, Frame: wire.Frame, At: wire.At}, nil
}

func kindFromString(name string) (track.EventKind, error) {
	switch strings.TrimSpace(name) {
	case "render_init":
		return track.EventRenderInit, nil
	case "frame_pre":
		return track.EventFramePre, nil
	case "frame_post":
		return track.EventFramePost, nil
	case "render_complete":
		return track.EventRenderComplete, nil
	case "render_cancel":
		return track.EventRenderCancel, nil
	default:
		return 0, fmt.Errorf("unknown event %q", name)
	}
}

// Stream reads events from r until EOF, a terminal event, or context
// cancellation, delivering each to handle. Lines that do not parse as events
// are skipped with a debug log. Returns the terminal event kind delivered,
// or an error when the stream ended without one.
func Stream(ctx context.Context, r io.Reader, logger *slog.Logger, handle func(track.Event)) (track.EventKind, error) {
	logger = logging.NewComponentLogger(logger, "events")
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		ev, err := Parse([]byte(line))
		if err != nil {
			logger.Debug("skipping non-event line", logging.Error(err))
			continue
		}
		handle(ev)
		if ev.Kind.Terminal() {
			return ev.Kind, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("read event stream: %w", err)
	}
	return 0, io.ErrUnexpectedEOF
}
