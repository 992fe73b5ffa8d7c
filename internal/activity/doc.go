// Package activity suggests something to do while a render runs.
//
// Suggestions come from an ordered table of (threshold seconds, message)
// pairs, loaded from an optional JSON document with a built-in fallback.
// Lookup picks the message of the greatest threshold not exceeding the
// estimated duration.
package activity
