package track

import (
	"log/slog"
	"sync"
	"time"

	"renderest/internal/estimate"
	"renderest/internal/logging"
	"renderest/internal/scene"
)

// Status strings surfaced through the ETA fields.
const (
	StatusAwaiting    = "AWAITING RENDER"
	StatusCalculating = "Calculating ETA"
	StatusFinishing   = "Finishing..."
	StatusComplete    = "RENDER COMPLETE"
	StatusStopped     = "RENDER STOPPED"
)

// Calibrator consumes completed animation timing so the calibration factor
// can be adjusted. It is invoked at most once per render, only for completed
// (never cancelled) animations with a captured pre-render estimate.
type Calibrator interface {
	RenderCompleted(estimatedSeconds, actualSeconds float64)
}

// Options configures tracker behavior for one render session.
type Options struct {
	// Calibration is the factor fed into live estimates and the pre-render
	// snapshot used for calibration.
	Calibration float64
	// AutoCalibrate enables capturing the pre-render estimate and invoking
	// the Calibrator at completion.
	AutoCalibrate bool
	// PersistentProgress keeps the previous total/average visible after a
	// new render starts.
	PersistentProgress bool
	// Debug emits a per-frame progress log line.
	Debug bool
	// Calibrator receives completed-render timing. May be nil.
	Calibrator Calibrator
	// Clock overrides time.Now for tests.
	Clock func() time.Time
}

// Tracker is the render lifecycle state machine. One live instance exists
// per tracked render; all mutation goes through Start and Handle.
type Tracker struct {
	mu     sync.Mutex
	scene  *scene.Scene
	opts   Options
	logger *slog.Logger

	frameStart  map[int]time.Time
	totalStart  time.Time
	firstFrame  int
	hasFirst    bool
	lastFrame   time.Duration
	etaClock    string
	etaHuman    string
	progress    float64
	rendering   bool
	singleFrame bool
	singleStart time.Time
	detected    bool

	preEstimate    float64
	hasPreEstimate bool

	totalTime time.Duration
	hasTotal  bool
	avgTime   time.Duration
	hasAvg    bool
}

// New builds a tracker for sc. The tracker starts idle; arm it with Start or
// let a render_init event synthesize the start.
func New(sc *scene.Scene, opts Options, logger *slog.Logger) *Tracker {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Tracker{
		scene:      sc,
		opts:       opts,
		logger:     logging.NewComponentLogger(logger, "tracker"),
		frameStart: make(map[int]time.Time),
		etaClock:   StatusAwaiting,
		etaHuman:   StatusAwaiting,
	}
}

// Start arms the tracker for a render this tool initiated. For animations
// with auto-calibration enabled it snapshots the pre-render estimate that the
// calibration step will compare against the observed total.
func (t *Tracker) Start(singleFrame bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetLocked(singleFrame, t.now())
}

// Rendering reports whether a render is currently being tracked.
func (t *Tracker) Rendering() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rendering
}

// Handle applies one lifecycle event to the state machine.
func (t *Tracker) Handle(ev Event) {
	at := ev.At
	if at.IsZero() {
		at = t.now()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	switch ev.Kind {
	case EventRenderInit:
		t.handleInit(at)
	case EventFramePre:
		t.handleFramePre(ev.Frame, at)
	case EventFramePost:
		t.handleFramePost(ev.Frame, at)
	case EventRenderComplete:
		t.handleComplete(at)
	case EventRenderCancel:
		t.handleCancel()
	}
}

func (t *Tracker) now() time.Time {
	return t.opts.Clock()
}

func (t *Tracker) resetLocked(singleFrame bool, at time.Time) {
	t.frameStart = make(map[int]time.Time)
	t.totalStart = time.Time{}
	t.lastFrame = 0
	t.hasFirst = false
	t.firstFrame = 0
	t.progress = 0
	t.detected = false
	t.hasPreEstimate = false
	t.preEstimate = 0
	if !t.opts.PersistentProgress {
		t.hasTotal = false
		t.hasAvg = false
	}
	t.etaClock = StatusCalculating
	t.etaHuman = StatusCalculating
	t.rendering = true
	t.singleFrame = singleFrame
	if singleFrame {
		t.singleStart = at
		return
	}
	t.singleStart = time.Time{}
	if t.opts.AutoCalibrate {
		t.preEstimate = estimate.Animation(t.scene, t.opts.Calibration)
		t.hasPreEstimate = true
	}
}

// handleInit covers renders that began on the host's native path, without
// Start having armed the tracker. Single-frame mode is assumed until a
// second frame proves otherwise.
func (t *Tracker) handleInit(at time.Time) {
	if !t.rendering {
		t.frameStart = make(map[int]time.Time)
		t.rendering = true
		t.totalStart = at
		t.hasFirst = false
		t.firstFrame = 0
		t.lastFrame = 0
		t.progress = 0
		t.hasTotal = false
		t.hasAvg = false
		t.etaClock = StatusCalculating
		t.etaHuman = StatusCalculating
		t.detected = false
		t.hasPreEstimate = false
		t.singleFrame = true
		t.singleStart = at
		return
	}
	if t.totalStart.IsZero() {
		t.totalStart = at
	}
}

func (t *Tracker) handleFramePre(frame int, at time.Time) {
	t.frameStart[frame] = at
	if !t.hasFirst {
		t.hasFirst = true
		t.firstFrame = frame
		t.totalStart = at
	} else if !t.detected {
		// A second distinct frame began: this is an animation. Capture the
		// pre-render estimate here for native renders Start never saw.
		t.detected = true
		t.singleFrame = false
		if !t.hasPreEstimate && t.opts.AutoCalibrate {
			t.preEstimate = estimate.Animation(t.scene, t.opts.Calibration)
			t.hasPreEstimate = true
		}
	}
	if t.totalStart.IsZero() {
		t.totalStart = at
	}
}

func (t *Tracker) handleFramePost(frame int, at time.Time) {
	if !t.hasFirst {
		// Render was not tracked from the start; nothing to reconcile.
		return
	}
	frameIndex := frame - t.firstFrame + 1
	totalFrames := t.scene.Frames.End - t.firstFrame + 1
	if totalFrames < 1 {
		totalFrames = 1
	}

	var frameTime time.Duration
	if start, ok := t.frameStart[frame]; ok {
		frameTime = at.Sub(start)
	}
	t.lastFrame = frameTime

	remaining := t.scene.Frames.End - frame
	if remaining > 0 {
		predicted := time.Duration(remaining) * frameTime
		t.etaClock = FormatClock(predicted)
		t.etaHuman = FormatHuman(predicted)
	} else {
		t.etaClock = StatusFinishing
		t.etaHuman = StatusFinishing
	}
	t.progress = float64(frameIndex) / float64(totalFrames)

	if t.opts.Debug {
		t.logger.Info("frame finished",
			logging.Int(logging.FieldFrame, frame),
			logging.String("bar", ProgressBar(frameIndex, totalFrames)),
			logging.Duration("frame_time", frameTime),
			logging.String("eta", t.etaHuman),
		)
	}
}

func (t *Tracker) handleComplete(at time.Time) {
	if !t.rendering {
		// A second terminal event is a no-op.
		return
	}

	if t.singleFrame {
		var total time.Duration
		if !t.singleStart.IsZero() {
			total = at.Sub(t.singleStart)
		}
		t.totalTime, t.hasTotal = total, true
		t.avgTime, t.hasAvg = total, true
		t.etaHuman = StatusComplete
		t.etaClock = StatusComplete + " | Time: " + FormatClock(total)
		if t.opts.Debug {
			t.logger.Info("single frame render complete", logging.Duration("total", total))
		}
		t.singleFrame = false
		t.singleStart = time.Time{}
		t.detected = false
	} else {
		totalFrames := 0
		if t.hasFirst {
			totalFrames = t.scene.Frames.End - t.firstFrame + 1
		}
		var total time.Duration
		if !t.totalStart.IsZero() {
			total = at.Sub(t.totalStart)
		}
		var avg time.Duration
		if totalFrames > 0 {
			avg = total / time.Duration(totalFrames)
		}
		t.totalTime, t.hasTotal = total, true
		t.avgTime, t.hasAvg = avg, true
		t.etaHuman = StatusComplete
		t.etaClock = StatusComplete + " | Total: " + FormatClock(total) + ", Avg: " + FormatClock(avg)
		if t.opts.Debug {
			t.logger.Info("render complete",
				logging.Duration("total", total),
				logging.Duration("avg_per_frame", avg),
			)
		}

		if t.opts.AutoCalibrate && t.opts.Calibrator != nil &&
			t.hasPreEstimate && t.preEstimate > 0 && total > 0 {
			t.opts.Calibrator.RenderCompleted(t.preEstimate, total.Seconds())
		}

		t.detected = false
		t.hasPreEstimate = false
		t.preEstimate = 0
	}

	t.frameStart = make(map[int]time.Time)
	t.rendering = false
}

func (t *Tracker) handleCancel() {
	if !t.rendering {
		return
	}
	t.etaHuman = StatusStopped
	t.etaClock = StatusStopped
	t.rendering = false
	t.singleFrame = false
	t.singleStart = time.Time{}
	t.detected = false
	// Cancelled renders never feed calibration.
	t.hasPreEstimate = false
	t.preEstimate = 0
	t.frameStart = make(map[int]time.Time)
	if t.opts.Debug {
		t.logger.Info("render cancelled")
	}
}
