// Package database provides the MySQL connection for the relational
// mirror of the dataset.
//
// The JSON dataset file stays the source of truth; the database is an
// optional, queryable copy fed by the importdb command (see feature/jobdb).
// Connection failures are therefore surfaced to the caller rather than
// retried: a run of the scrape pipeline never needs the database at all.
package database
