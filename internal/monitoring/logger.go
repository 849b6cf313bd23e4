// Package monitoring carries the process-wide diagnostic logger. The
// reconstruction core stays silent on hot paths and reports only
// diagnosable anomalies (e.g. occupancy-grid collisions) through Logf.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf
// but may be replaced by SetLogger; tests and embedding programs can
// redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// Debugf emits verbose per-candidate diagnostics. It is a no-op unless
// EnableDebug has been called.
var Debugf func(format string, v ...interface{}) = func(string, ...interface{}) {}

// SetLogger replaces the package logger. Passing nil installs a no-op
// logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// EnableDebug routes Debugf through the current Logf.
func EnableDebug() {
	Debugf = func(format string, v ...interface{}) { Logf(format, v...) }
}
