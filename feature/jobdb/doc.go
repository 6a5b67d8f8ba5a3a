// Package jobdb mirrors the posting dataset into a relational database
// for ad-hoc querying. Each posting becomes a jobs row keyed by its
// identity key, with skill tags extracted from the position title into a
// side table. Import is additive: rows already present are skipped, the
// JSON dataset stays the source of truth.
package jobdb
