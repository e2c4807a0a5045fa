// Package logger provides structured JSON logging for the groups catalog
// pipeline.
//
// Loggers write one JSON object per line to an io.Writer and support the
// usual DEBUG/INFO/WARN/ERROR levels with arbitrary structured fields. A
// Capture can be attached to a logger to additionally collect human-readable
// lines; the refresh endpoint uses this to return the run's log alongside its
// result. Metrics track counters and timing measurements for a run.
package logger
