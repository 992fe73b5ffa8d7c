// Package testsupport provides fixture builders shared across tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"renderest/internal/config"
	"renderest/internal/scene"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp paths per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.ActivitiesPath = filepath.Join(base, "activities.json")
	cfg.Paths.HistoryDB = filepath.Join(base, "history.db")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithCalibration sets the calibration factor on the test config.
func WithCalibration(factor float64) ConfigOption {
	return func(c *config.Config) {
		c.Estimator.CalibrationFactor = factor
	}
}

// SceneOption allows callers to customize the generated test scene.
type SceneOption func(*scene.Scene)

// NewPathScene builds a path-tracer scene at 1080p with a ten frame range.
// The zero-extras scene estimates deterministically: samples 100, factor 1.0
// yields exactly one second per frame.
func NewPathScene(t testing.TB, opts ...SceneOption) *scene.Scene {
	t.Helper()

	sc := &scene.Scene{
		Name:       "Test Scene",
		Engine:     scene.EnginePath,
		Resolution: scene.Resolution{Width: 1920, Height: 1080, Scale: 100},
		Frames:     scene.FrameRange{Start: 1, End: 10, Current: 1},
		Path:       &scene.PathSettings{Samples: 100},
	}
	for _, opt := range opts {
		opt(sc)
	}
	return sc
}

// WithFrames overrides the scene frame range.
func WithFrames(start, end int) SceneOption {
	return func(sc *scene.Scene) {
		sc.Frames = scene.FrameRange{Start: start, End: end, Current: start}
	}
}

// WithObjects replaces the scene object list.
func WithObjects(objects ...scene.Object) SceneOption {
	return func(sc *scene.Scene) {
		sc.Objects = objects
	}
}
