// Package notify delivers run results to people.
//
// Email is the primary channel: an HTML digest of the run with the
// workbook attached. Telegram is a best-effort secondary channel; a
// delivery failure there never fails the run.
package notify
