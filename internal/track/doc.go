// Package track owns the render lifecycle state machine.
//
// A Tracker consumes the five lifecycle events a renderer emits (init,
// per-frame pre/post, complete, cancel) and maintains progress, ETA, and the
// post-render summary. It reconciles the pre-render estimate with live
// per-frame timing: once a frame has finished, the ETA is a linear
// extrapolation from that frame's duration, not a rolling average.
//
// The Tracker is safe for concurrent use; status readers may poll Snapshot
// while the event loop feeds Handle.
package track
