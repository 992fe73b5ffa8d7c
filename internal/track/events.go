package track

import "time"

// EventKind enumerates the lifecycle notifications a renderer emits.
type EventKind int

const (
	// EventRenderInit fires once when the render pipeline starts up.
	EventRenderInit EventKind = iota
	// EventFramePre fires once per frame, just before it renders.
	EventFramePre
	// EventFramePost fires once per frame, after it finishes.
	EventFramePost
	// EventRenderComplete fires when the whole render finishes.
	EventRenderComplete
	// EventRenderCancel fires when the render is interrupted.
	EventRenderCancel
)

func (k EventKind) String() string {
	switch k {
	case EventRenderInit:
		return "render_init"
	case EventFramePre:
		return "frame_pre"
	case EventFramePost:
		return "frame_post"
	case EventRenderComplete:
		return "render_complete"
	case EventRenderCancel:
		return "render_cancel"
	default:
		return "unknown"
	}
}

// Terminal reports whether the event ends a render attempt.
func (k EventKind) Terminal() bool {
	return k == EventRenderComplete || k == EventRenderCancel
}

// Event is one lifecycle notification. Frame is meaningful for FramePre and
// FramePost. A zero At means "now".
type Event struct {
	Kind  EventKind
	Frame int
	At    time.Time
}
