// Package scene models the renderer-facing view of a scene: the active
// engine, resolution, frame range, per-engine quality settings, and the
// object list the complexity extractor walks.
//
// Scenes arrive as JSON documents exported by the host renderer. The package
// validates and normalizes them on load so downstream estimation code can
// assume sane values (positive resolution, an inclusive frame range, a
// recognized engine tag or an explicit unknown).
package scene
