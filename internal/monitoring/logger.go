// Package monitoring routes diagnostic output from the telemetry feed.
// Malformed serial lines are frequent during rig bring-up, so callers
// need a way to capture or mute them.
package monitoring

import "log"

// Logf emits a diagnostic line. Defaults to log.Printf.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger swaps the diagnostic sink. nil mutes it.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
