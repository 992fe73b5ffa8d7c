// Package calibrate adjusts the persistent calibration factor from
// completed-render feedback.
//
// The update is deliberately damped: the new factor is the average of the
// current factor and the naively corrected one, so a single noisy render
// cannot swing estimates wildly. Only completed, non-cancelled animation
// renders feed the loop, once each.
package calibrate
