// Package report turns a reconciliation diff into the value the outward
// collaborators render: summary counts plus the ordered new and updated
// posting rows, with every field a notification needs.
//
// A report with all change counts at zero carries the NoUpdates flag so the
// notifier can decide to stay silent. The latest report is persisted as
// JSON next to the dataset, which lets the report command and the HTTP API
// re-serve it without re-running a scrape.
package report
