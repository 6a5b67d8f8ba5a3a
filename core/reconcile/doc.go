// Package reconcile merges freshly scraped posting candidates into the
// stored historical set and classifies every posting as new, updated,
// unchanged or expired.
//
// The engine is pure: it takes the existing keyed collection, the incoming
// candidate sequence and a reference date, and returns the updated
// collection plus a Diff describing what changed. It reads no configuration
// and performs no I/O; loading and persisting the collection is the dataset
// store's job, and obtaining candidates is the extractor's.
//
// # Guarantees
//
//   - Identity-key uniqueness holds in the returned collection.
//   - FirstSeenAt is immutable once set; LastSeenAt is bumped whenever a
//     posting reappears.
//   - A stored posting whose deadline lies strictly before the reference
//     date is expired and excluded from the returned collection.
//   - The Diff's New and Updated lists preserve candidate encounter order,
//     so identical inputs produce identical reports.
//   - Running the engine twice over its own output with the same input and
//     reference date yields zero new and zero updated entries.
//
// Malformed candidates are dropped and counted as skipped; they never abort
// a run.
package reconcile
