// Package estimate implements the heuristic render cost model.
//
// Estimates start from the engine's native sample count and apply
// independent multiplicative corrections for resolution, geometry, lights,
// volumes, and per-engine quality toggles, scaled by the user's calibration
// factor. This is a heuristic, not a physical model: accuracy comes from
// calibration, not first principles. Results are floored at a small positive
// minimum so downstream ETA math never sees zero or negative durations.
package estimate
