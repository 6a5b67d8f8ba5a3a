// Package dataset persists the keyed collection of postings between runs.
//
// The store is a single human-inspectable JSON file: one object per
// identity key under a top-level "postings" map. Load returns an empty
// collection when no file exists yet; that is a normal first run, not an
// error. Save writes a temporary file in the same directory and renames it
// over the old one, so a crash mid-write can never leave a half-written
// dataset for the next run.
//
// A run wraps load/reconcile/save in an advisory file lock. Concurrent runs
// are out of scope, but a stray overlapping cron invocation fails fast with
// a *PersistenceError instead of silently interleaving writes.
package dataset
