package config

const (
	defaultCalibrationFactor = 2.0
	defaultAutoCalibrate     = true
	defaultActivitiesPath    = "~/.config/renderest/activities.json"
	defaultHistoryDB         = "~/.local/share/renderest/history.db"
	defaultLogDir            = "~/.local/share/renderest/logs"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Estimator: Estimator{
			CalibrationFactor: defaultCalibrationFactor,
			AutoCalibrate:     defaultAutoCalibrate,
		},
		Paths: Paths{
			ActivitiesPath: defaultActivitiesPath,
			HistoryDB:      defaultHistoryDB,
			LogDir:         defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
