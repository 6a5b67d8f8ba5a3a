// Package posting defines the canonical representation of a scraped job
// posting and the identity rules that make postings comparable across runs.
//
// # Identity
//
// A posting is identified by a deterministic fingerprint of its stable
// fields (company, title, location). The fingerprint is computed over
// normalized text, so incidental formatting differences between scrapes
// (extra whitespace, full-width vs half-width characters, letter case)
// never produce spurious duplicates. Non-identity fields (deadline, links,
// notes) may change freely without changing the key.
//
// # Boundary validation
//
// Raw is the shape produced by the extractor: untyped strings straight off
// the page. FromRaw is the single place where a Raw candidate becomes a
// validated Record; a candidate missing a required field is rejected with a
// *ValidationError so callers can skip and count it instead of aborting.
package posting
