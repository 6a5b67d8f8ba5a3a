// Package scrape is the extractor collaborator: it fetches the listing
// pages of the recruitment site over HTTP and turns table rows into raw
// posting candidates.
//
// The reconciliation core treats this package as an opaque producer. It
// only sees the resulting []posting.Raw; pagination, session batching,
// request pacing and row parsing all stay on this side of the boundary.
//
// Pages are fetched in sessions of at most MaxPagesPerSession, mirroring
// how the site tolerates paging, with a pause between sessions and a
// per-host rate limit inside one. A row that fails to parse is skipped and
// logged; a page that fails to fetch ends the run with an
// *ExtractionFailure carrying whatever complete pages were already
// collected.
package scrape
