// Package logger provides the structured logging facility, built on Zap.
//
// The run pipeline logs as JSON in production and colorized console output
// during development, selected by configuration. Every run binds a run_id
// field so multi-run log streams (cron output, CI logs) can be correlated.
//
// For the HTTP surface, WithRequestID attaches the per-request identifier
// from the Fiber context to the log entry.
package logger
