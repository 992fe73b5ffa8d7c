package calibrate_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"renderest/internal/calibrate"
	"renderest/internal/config"
)

func TestNextDampedUpdate(t *testing.T) {
	// F=2, E=100, A=200: correction 2.0, naive 4.0, averaged 3.0.
	got := calibrate.Next(2.0, 100, 200)
	if math.Abs(got-3.0) > 1e-9 {
		t.Fatalf("Next = %v, want 3.0", got)
	}
}

func TestNextOverestimateShrinksFactor(t *testing.T) {
	// Actual half the estimate: naive 1.0, averaged 1.5.
	got := calibrate.Next(2.0, 100, 50)
	if math.Abs(got-1.5) > 1e-9 {
		t.Fatalf("Next = %v, want 1.5", got)
	}
}

func TestNextClamps(t *testing.T) {
	if got := calibrate.Next(40.0, 1, 1000); got != config.CalibrationMax {
		t.Fatalf("Next = %v, want clamp at %v", got, config.CalibrationMax)
	}
	if got := calibrate.Next(0.1, 1000, 1); got != config.CalibrationMin {
		t.Fatalf("Next = %v, want clamp at %v", got, config.CalibrationMin)
	}
}

func TestNextIgnoresNonPositiveInputs(t *testing.T) {
	if got := calibrate.Next(2.0, 0, 100); got != 2.0 {
		t.Fatalf("Next with zero estimate = %v, want unchanged", got)
	}
	if got := calibrate.Next(2.0, 100, 0); got != 2.0 {
		t.Fatalf("Next with zero actual = %v, want unchanged", got)
	}
}

func TestNextScenarioTenFrameRun(t *testing.T) {
	// 100 s estimated, 150 s actual: new factor = (F + F*1.5)/2 = 1.25F.
	for _, factor := range []float64{0.5, 1.0, 2.0, 8.0} {
		want := (factor + factor*1.5) / 2
		if got := calibrate.Next(factor, 100, 150); math.Abs(got-want) > 1e-9 {
			t.Fatalf("Next(%v) = %v, want %v", factor, got, want)
		}
	}
}

func TestUpdaterPersistsFactor(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")

	updater := calibrate.NewUpdater(configPath, 2.0, nil)
	updater.RenderCompleted(100, 200)

	if got := updater.Factor(); math.Abs(got-3.0) > 1e-9 {
		t.Fatalf("Factor = %v, want 3.0", got)
	}
	adj, ok := updater.Last()
	if !ok {
		t.Fatal("expected an adjustment to be recorded")
	}
	if adj.FactorBefore != 2.0 || math.Abs(adj.FactorAfter-3.0) > 1e-9 {
		t.Fatalf("adjustment = %+v", adj)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	var cfg config.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("parse written config: %v", err)
	}
	if math.Abs(cfg.Estimator.CalibrationFactor-3.0) > 1e-9 {
		t.Fatalf("persisted factor = %v, want 3.0", cfg.Estimator.CalibrationFactor)
	}
}

func TestUpdaterNoChangeNoWrite(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")

	updater := calibrate.NewUpdater(configPath, 2.0, nil)
	updater.RenderCompleted(100, 100)

	if _, ok := updater.Last(); ok {
		t.Fatal("no adjustment expected when the estimate was exact")
	}
	if _, err := os.Stat(configPath); !os.IsNotExist(err) {
		t.Fatalf("config should not have been written, stat err = %v", err)
	}
}
