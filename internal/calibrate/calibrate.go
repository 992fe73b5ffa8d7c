package calibrate

import (
	"log/slog"
	"sync"

	"renderest/internal/config"
	"renderest/internal/logging"
)

// Next computes the updated calibration factor given the factor that
// produced the estimate, the pre-render estimate, and the observed total
// (both in seconds). The correction is damped by averaging with the current
// factor and clamped to the valid range. Non-positive inputs leave the
// factor unchanged.
func Next(current, estimatedSeconds, actualSeconds float64) float64 {
	if estimatedSeconds <= 0 || actualSeconds <= 0 {
		return current
	}
	correction := actualSeconds / estimatedSeconds
	naive := current * correction
	averaged := (current + naive) / 2
	if averaged < config.CalibrationMin {
		averaged = config.CalibrationMin
	}
	if averaged > config.CalibrationMax {
		averaged = config.CalibrationMax
	}
	return averaged
}

// Adjustment records one applied calibration update.
type Adjustment struct {
	EstimatedSeconds float64
	ActualSeconds    float64
	FactorBefore     float64
	FactorAfter      float64
}

// Updater applies calibration updates and persists the new factor to the
// config file. It implements track.Calibrator.
type Updater struct {
	configPath string
	factor     float64
	logger     *slog.Logger

	mu   sync.Mutex
	last *Adjustment
}

// NewUpdater builds an updater around the active factor and the config file
// it should persist updates to.
func NewUpdater(configPath string, factor float64, logger *slog.Logger) *Updater {
	return &Updater{
		configPath: configPath,
		factor:     factor,
		logger:     logging.NewComponentLogger(logger, "calibrate"),
	}
}

// RenderCompleted folds one completed animation render into the factor and
// persists the result. Persistence failures are logged, not raised; the
// render itself already succeeded.
func (u *Updater) RenderCompleted(estimatedSeconds, actualSeconds float64) {
	u.mu.Lock()
	defer u.mu.Unlock()

	next := Next(u.factor, estimatedSeconds, actualSeconds)
	if next == u.factor {
		return
	}
	adj := Adjustment{
		EstimatedSeconds: estimatedSeconds,
		ActualSeconds:    actualSeconds,
		FactorBefore:     u.factor,
		FactorAfter:      next,
	}
	u.logger.Info("calibration adjusted",
		logging.Float64("estimated_s", estimatedSeconds),
		logging.Float64("actual_s", actualSeconds),
		logging.Float64("factor_before", adj.FactorBefore),
		logging.Float64("factor_after", adj.FactorAfter),
	)
	if err := config.SaveCalibration(u.configPath, next); err != nil {
		u.logger.Warn("persist calibration failed", logging.Error(err))
	}
	u.factor = next
	u.last = &adj
}

// Factor returns the currently active factor.
func (u *Updater) Factor() float64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.factor
}

// Last returns the most recent adjustment, if any occurred.
func (u *Updater) Last() (Adjustment, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.last == nil {
		return Adjustment{}, false
	}
	return *u.last, true
}
