// Package events decodes the renderer's lifecycle event stream.
//
// Renderers (or shims around them) emit one JSON object per line:
//
//	{"event":"render_init"}
//	{"event":"frame_pre","frame":1}
//	{"event":"frame_post","frame":1}
//	{"event":"render_complete"}
//
// The decoder is the thin adapter between the host's native callbacks and
// the track state machine; malformed lines are skipped so a chatty renderer
// log interleaved with events cannot wedge tracking.
package events
