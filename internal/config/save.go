package config

import (
	"fmt"
	"os"

	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"

	"renderest/internal/fileutil"
)

// SaveCalibration persists a new calibration factor to the config file at
// path, creating the file from defaults when absent. The value is clamped to
// the valid range before writing. A sibling lock file serializes writers so
// concurrent invocations do not lose updates.
func SaveCalibration(path string, factor float64) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if factor < CalibrationMin {
		factor = CalibrationMin
	}
	if factor > CalibrationMax {
		factor = CalibrationMax
	}

	if err := fileutil.EnsureParentDir(expanded); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	lock := flock.New(expanded + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock config: %w", err)
	}
	defer lock.Unlock()

	cfg := Default()
	if data, err := os.ReadFile(expanded); err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read config: %w", err)
	}

	cfg.Estimator.CalibrationFactor = factor

	encoded, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := fileutil.WriteFileAtomic(expanded, encoded, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
