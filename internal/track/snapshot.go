package track

import "time"

// Snapshot is a point-in-time copy of tracker state for presentation code.
type Snapshot struct {
	Rendering         bool
	SingleFrame       bool
	DetectedAnimation bool

	FirstFrame    int
	HasFirstFrame bool

	Progress      float64
	LastFrameTime time.Duration

	ETAClock string
	ETAHuman string

	SingleStart time.Time
	TotalStart  time.Time

	PreEstimateSeconds float64
	HasPreEstimate     bool

	TotalTime time.Duration
	HasTotal  bool
	AvgTime   time.Duration
	HasAvg    bool
}

// Snapshot returns a consistent copy of the current state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{
		Rendering:          t.rendering,
		SingleFrame:        t.singleFrame,
		DetectedAnimation:  t.detected,
		FirstFrame:         t.firstFrame,
		HasFirstFrame:      t.hasFirst,
		Progress:           t.progress,
		LastFrameTime:      t.lastFrame,
		ETAClock:           t.etaClock,
		ETAHuman:           t.etaHuman,
		SingleStart:        t.singleStart,
		TotalStart:         t.totalStart,
		PreEstimateSeconds: t.preEstimate,
		HasPreEstimate:     t.hasPreEstimate,
		TotalTime:          t.totalTime,
		HasTotal:           t.hasTotal,
		AvgTime:            t.avgTime,
		HasAvg:             t.hasAvg,
	}
}
