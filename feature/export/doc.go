// Package export renders the posting dataset to spreadsheet files.
//
// The xlsx export is the human-facing artifact: one row per active
// posting, with rows that appeared in the latest run highlighted so a
// reader can scan for them. The csv export carries the same columns for
// tooling that prefers plain text.
package export
