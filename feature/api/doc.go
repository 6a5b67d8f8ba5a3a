// Package api exposes the posting dataset over HTTP.
//
// It is a read-only view: the dataset file stays the source of truth and
// is re-read on each request, so a scrape run finishing mid-serve is
// picked up without a restart.
//
// # Endpoints
//
//   - GET /postings: all active postings, newest activity first
//   - GET /postings/:key: one posting by identity key
//   - GET /report: the latest run report
package api
