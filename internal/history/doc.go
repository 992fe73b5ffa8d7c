// Package history persists completed and cancelled render sessions in
// SQLite.
//
// The store is an audit trail for the calibration loop: each row captures
// what was estimated, what actually happened, and how the calibration factor
// moved in response. It is not load-bearing for estimation; a missing or
// broken database only disables the history listing.
package history
