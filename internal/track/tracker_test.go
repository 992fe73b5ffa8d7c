package track_test

import (
	"sync"
	"testing"
	"time"

	"renderest/internal/testsupport"
	"renderest/internal/track"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type spyCalibrator struct {
	calls []([2]float64)
}

func (s *spyCalibrator) RenderCompleted(estimated, actual float64) {
	s.calls = append(s.calls, [2]float64{estimated, actual})
}

func TestPostFrameETAExtrapolatesFromLastFrame(t *testing.T) {
	clock := newFakeClock()
	sc := testsupport.NewPathScene(t, testsupport.WithFrames(1, 10))
	tracker := track.New(sc, track.Options{Calibration: 1.0, Clock: clock.Now}, nil)

	tracker.Start(false)
	tracker.Handle(track.Event{Kind: track.EventRenderInit})
	tracker.Handle(track.Event{Kind: track.EventFramePre, Frame: 1})
	clock.Advance(10 * time.Second)
	tracker.Handle(track.Event{Kind: track.EventFramePost, Frame: 1})

	snap := tracker.Snapshot()
	// 9 frames remain at 10 s each.
	if snap.ETAClock != "00:01:30" {
		t.Fatalf("ETAClock = %q, want 00:01:30", snap.ETAClock)
	}
	if snap.ETAHuman != "1 minute, 30 seconds" {
		t.Fatalf("ETAHuman = %q", snap.ETAHuman)
	}
	if snap.Progress != 0.1 {
		t.Fatalf("Progress = %v, want 0.1", snap.Progress)
	}
	if snap.LastFrameTime != 10*time.Second {
		t.Fatalf("LastFrameTime = %v", snap.LastFrameTime)
	}
}

func TestPostFrameOnFinalFrameSetsFinishing(t *testing.T) {
	clock := newFakeClock()
	sc := testsupport.NewPathScene(t, testsupport.WithFrames(1, 2))
	tracker := track.New(sc, track.Options{Clock: clock.Now}, nil)

	tracker.Start(false)
	tracker.Handle(track.Event{Kind: track.EventFramePre, Frame: 1})
	clock.Advance(time.Second)
	tracker.Handle(track.Event{Kind: track.EventFramePost, Frame: 1})
	tracker.Handle(track.Event{Kind: track.EventFramePre, Frame: 2})
	clock.Advance(time.Second)
	tracker.Handle(track.Event{Kind: track.EventFramePost, Frame: 2})

	snap := tracker.Snapshot()
	if snap.ETAHuman != track.StatusFinishing {
		t.Fatalf("ETAHuman = %q, want finishing status", snap.ETAHuman)
	}
	if snap.Progress != 1.0 {
		t.Fatalf("Progress = %v, want 1.0", snap.Progress)
	}
}

func TestPostFrameWithoutTrackedStartIsNoOp(t *testing.T) {
	sc := testsupport.NewPathScene(t)
	tracker := track.New(sc, track.Options{Clock: newFakeClock().Now}, nil)

	tracker.Start(false)
	tracker.Handle(track.Event{Kind: track.EventFramePost, Frame: 5})

	snap := tracker.Snapshot()
	if snap.Progress != 0 {
		t.Fatalf("Progress = %v, want 0", snap.Progress)
	}
	if snap.ETAHuman != track.StatusCalculating {
		t.Fatalf("ETAHuman = %q, want calculating status", snap.ETAHuman)
	}
}

func TestAnimationDetectedOnSecondFrame(t *testing.T) {
	clock := newFakeClock()
	sc := testsupport.NewPathScene(t, testsupport.WithFrames(1, 10))
	tracker := track.New(sc, track.Options{
		Calibration:   1.0,
		AutoCalibrate: true,
		Clock:         clock.Now,
	}, nil)

	// Native render path: no Start, just init.
	tracker.Handle(track.Event{Kind: track.EventRenderInit})
	snap := tracker.Snapshot()
	if !snap.Rendering || !snap.SingleFrame {
		t.Fatalf("after init: rendering=%v singleFrame=%v", snap.Rendering, snap.SingleFrame)
	}

	tracker.Handle(track.Event{Kind: track.EventFramePre, Frame: 1})
	snap = tracker.Snapshot()
	if snap.DetectedAnimation {
		t.Fatal("detected animation after first frame")
	}
	if !snap.HasFirstFrame || snap.FirstFrame != 1 {
		t.Fatalf("first frame = %v/%v", snap.HasFirstFrame, snap.FirstFrame)
	}

	tracker.Handle(track.Event{Kind: track.EventFramePre, Frame: 2})
	snap = tracker.Snapshot()
	if !snap.DetectedAnimation {
		t.Fatal("animation not detected after second frame")
	}
	if snap.SingleFrame {
		t.Fatal("single-frame flag still set after detection")
	}
	if !snap.HasPreEstimate {
		t.Fatal("pre-render estimate not captured on detection")
	}
	// 10 frames at 1 s/frame with the baseline scene.
	if snap.PreEstimateSeconds != 10.0 {
		t.Fatalf("pre-estimate = %v, want 10", snap.PreEstimateSeconds)
	}
}

func TestFirstFrameHonorsSubrangeStart(t *testing.T) {
	clock := newFakeClock()
	sc := testsupport.NewPathScene(t, testsupport.WithFrames(1, 10))
	tracker := track.New(sc, track.Options{Clock: clock.Now}, nil)

	tracker.Start(false)
	tracker.Handle(track.Event{Kind: track.EventFramePre, Frame: 7})
	clock.Advance(2 * time.Second)
	tracker.Handle(track.Event{Kind: track.EventFramePost, Frame: 7})

	snap := tracker.Snapshot()
	if snap.FirstFrame != 7 {
		t.Fatalf("FirstFrame = %d, want 7", snap.FirstFrame)
	}
	// Run covers frames 7..10: one of four frames done.
	if snap.Progress != 0.25 {
		t.Fatalf("Progress = %v, want 0.25", snap.Progress)
	}
	// 3 frames remain at 2 s.
	if snap.ETAClock != "00:00:06" {
		t.Fatalf("ETAClock = %q, want 00:00:06", snap.ETAClock)
	}
}

func TestCompleteAnimationComputesTotalsAndCalibrates(t *testing.T) {
	clock := newFakeClock()
	spy := &spyCalibrator{}
	sc := testsupport.NewPathScene(t, testsupport.WithFrames(1, 2))
	tracker := track.New(sc, track.Options{
		Calibration:   1.0,
		AutoCalibrate: true,
		Calibrator:    spy,
		Clock:         clock.Now,
	}, nil)

	tracker.Start(false)
	tracker.Handle(track.Event{Kind: track.EventFramePre, Frame: 1})
	clock.Advance(3 * time.Second)
	tracker.Handle(track.Event{Kind: track.EventFramePost, Frame: 1})
	tracker.Handle(track.Event{Kind: track.EventFramePre, Frame: 2})
	clock.Advance(3 * time.Second)
	tracker.Handle(track.Event{Kind: track.EventFramePost, Frame: 2})
	tracker.Handle(track.Event{Kind: track.EventRenderComplete})

	snap := tracker.Snapshot()
	if snap.Rendering {
		t.Fatal("still rendering after complete")
	}
	if !snap.HasTotal || snap.TotalTime != 6*time.Second {
		t.Fatalf("TotalTime = %v/%v, want 6s", snap.HasTotal, snap.TotalTime)
	}
	if !snap.HasAvg || snap.AvgTime != 3*time.Second {
		t.Fatalf("AvgTime = %v/%v, want 3s", snap.HasAvg, snap.AvgTime)
	}
	if snap.ETAHuman != track.StatusComplete {
		t.Fatalf("ETAHuman = %q", snap.ETAHuman)
	}
	if snap.ETAClock != "RENDER COMPLETE | Total: 00:00:06, Avg: 00:00:03" {
		t.Fatalf("ETAClock = %q", snap.ETAClock)
	}
	if snap.HasPreEstimate {
		t.Fatal("pre-estimate not consumed at complete")
	}

	if len(spy.calls) != 1 {
		t.Fatalf("calibrator calls = %d, want 1", len(spy.calls))
	}
	// Pre-estimate 2 s (2 frames at 1 s), actual 6 s.
	if spy.calls[0] != [2]float64{2.0, 6.0} {
		t.Fatalf("calibrator got %v", spy.calls[0])
	}
}

func TestCompleteSingleFrame(t *testing.T) {
	clock := newFakeClock()
	spy := &spyCalibrator{}
	sc := testsupport.NewPathScene(t)
	tracker := track.New(sc, track.Options{
		AutoCalibrate: true,
		Calibrator:    spy,
		Clock:         clock.Now,
	}, nil)

	tracker.Start(true)
	tracker.Handle(track.Event{Kind: track.EventFramePre, Frame: 1})
	clock.Advance(4 * time.Second)
	tracker.Handle(track.Event{Kind: track.EventFramePost, Frame: 1})
	tracker.Handle(track.Event{Kind: track.EventRenderComplete})

	snap := tracker.Snapshot()
	if snap.TotalTime != 4*time.Second || snap.AvgTime != 4*time.Second {
		t.Fatalf("totals = %v/%v, want 4s", snap.TotalTime, snap.AvgTime)
	}
	if snap.ETAClock != "RENDER COMPLETE | Time: 00:00:04" {
		t.Fatalf("ETAClock = %q", snap.ETAClock)
	}
	if len(spy.calls) != 0 {
		t.Fatal("single-frame render must not calibrate")
	}
}

func TestCancelClearsPreEstimateAndSkipsCalibration(t *testing.T) {
	clock := newFakeClock()
	spy := &spyCalibrator{}
	sc := testsupport.NewPathScene(t, testsupport.WithFrames(1, 10))
	tracker := track.New(sc, track.Options{
		Calibration:   1.0,
		AutoCalibrate: true,
		Calibrator:    spy,
		Clock:         clock.Now,
	}, nil)

	tracker.Start(false)
	if snap := tracker.Snapshot(); !snap.HasPreEstimate {
		t.Fatal("Start(false) with auto-calibrate should capture the pre-estimate")
	}
	tracker.Handle(track.Event{Kind: track.EventFramePre, Frame: 1})
	clock.Advance(time.Second)
	tracker.Handle(track.Event{Kind: track.EventRenderCancel})

	snap := tracker.Snapshot()
	if snap.Rendering {
		t.Fatal("still rendering after cancel")
	}
	if snap.HasPreEstimate {
		t.Fatal("cancel left the pre-estimate in place")
	}
	if snap.ETAHuman != track.StatusStopped || snap.ETAClock != track.StatusStopped {
		t.Fatalf("status after cancel = %q/%q", snap.ETAHuman, snap.ETAClock)
	}
	if len(spy.calls) != 0 {
		t.Fatal("cancelled render fed calibration")
	}

	// A late complete after cancel is a no-op.
	tracker.Handle(track.Event{Kind: track.EventRenderComplete})
	snap = tracker.Snapshot()
	if snap.ETAHuman != track.StatusStopped {
		t.Fatalf("late complete changed status to %q", snap.ETAHuman)
	}
	if len(spy.calls) != 0 {
		t.Fatal("late complete fed calibration")
	}
}

func TestDoubleCompleteIsNoOp(t *testing.T) {
	clock := newFakeClock()
	spy := &spyCalibrator{}
	sc := testsupport.NewPathScene(t, testsupport.WithFrames(1, 2))
	tracker := track.New(sc, track.Options{
		Calibration:   1.0,
		AutoCalibrate: true,
		Calibrator:    spy,
		Clock:         clock.Now,
	}, nil)

	tracker.Start(false)
	tracker.Handle(track.Event{Kind: track.EventFramePre, Frame: 1})
	tracker.Handle(track.Event{Kind: track.EventFramePre, Frame: 2})
	clock.Advance(2 * time.Second)
	tracker.Handle(track.Event{Kind: track.EventRenderComplete})
	total := tracker.Snapshot().TotalTime

	clock.Advance(time.Hour)
	tracker.Handle(track.Event{Kind: track.EventRenderComplete})

	snap := tracker.Snapshot()
	if snap.TotalTime != total {
		t.Fatalf("second complete changed total: %v -> %v", total, snap.TotalTime)
	}
	if len(spy.calls) != 1 {
		t.Fatalf("calibrator calls = %d, want 1", len(spy.calls))
	}
}

func TestPersistentProgressKeepsSummaryAcrossStart(t *testing.T) {
	clock := newFakeClock()
	sc := testsupport.NewPathScene(t)
	tracker := track.New(sc, track.Options{PersistentProgress: true, Clock: clock.Now}, nil)

	tracker.Start(true)
	clock.Advance(5 * time.Second)
	tracker.Handle(track.Event{Kind: track.EventRenderComplete})
	if snap := tracker.Snapshot(); !snap.HasTotal {
		t.Fatal("no total after complete")
	}

	tracker.Start(true)
	if snap := tracker.Snapshot(); !snap.HasTotal {
		t.Fatal("persistent progress cleared the summary")
	}

	plain := track.New(sc, track.Options{Clock: clock.Now}, nil)
	plain.Start(true)
	clock.Advance(5 * time.Second)
	plain.Handle(track.Event{Kind: track.EventRenderComplete})
	plain.Start(true)
	if snap := plain.Snapshot(); snap.HasTotal {
		t.Fatal("summary survived reset without persistent progress")
	}
}

func TestZeroFrameRangeGuard(t *testing.T) {
	clock := newFakeClock()
	// First rendered frame past the configured end: total-frames guard kicks in.
	sc := testsupport.NewPathScene(t, testsupport.WithFrames(1, 3))
	tracker := track.New(sc, track.Options{Clock: clock.Now}, nil)

	tracker.Start(false)
	tracker.Handle(track.Event{Kind: track.EventFramePre, Frame: 5})
	clock.Advance(time.Second)
	tracker.Handle(track.Event{Kind: track.EventFramePost, Frame: 5})

	snap := tracker.Snapshot()
	if snap.Progress != 1.0 {
		t.Fatalf("Progress = %v, want guarded 1.0", snap.Progress)
	}
	if snap.ETAHuman != track.StatusFinishing {
		t.Fatalf("ETAHuman = %q", snap.ETAHuman)
	}
}
