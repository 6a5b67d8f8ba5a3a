package reconcile

import (
	"time"

	"jobwatch/core/posting"
)

// Summary provides aggregate counts for one reconciliation pass.
type Summary struct {
	// New counts postings seen for the first time.
	New int `json:"new"`

	// Updated counts postings whose displayed fields changed.
	Updated int `json:"updated"`

	// Unchanged counts postings that reappeared identically this run.
	// Stored postings absent from the scrape but still retained are not
	// counted here; they were not part of this run's candidates.
	Unchanged int `json:"unchanged"`

	// Expired counts postings removed because their deadline passed
	// (or the absence grace window elapsed, when enabled).
	Expired int `json:"expired"`

	// Skipped counts malformed candidates dropped at the boundary.
	Skipped int `json:"skipped"`
}

// Changed reports whether the pass produced any new or updated postings.
func (s Summary) Changed() bool {
	return s.New > 0 || s.Updated > 0
}

// Diff is the result of one reconciliation pass.
type Diff struct {
	// Summary holds the aggregate counts.
	Summary Summary `json:"summary"`

	// NewRecords lists new postings in candidate encounter order.
	NewRecords []posting.Record `json:"new_records"`

	// UpdatedRecords lists updated postings in candidate encounter order.
	UpdatedRecords []posting.Record `json:"updated_records"`

	// ExpiredKeys lists the identity keys removed from the collection.
	// Expired postings are counted and logged, never rendered.
	ExpiredKeys []string `json:"expired_keys,omitempty"`

	// SkipReasons explains each skipped candidate, for logging.
	SkipReasons []string `json:"skip_reasons,omitempty"`
}

// Options controls optional engine behavior. The zero value is the default
// policy: retain absent postings until their deadline passes.
type Options struct {
	// AbsenceGrace, when positive, expires a stored posting that has been
	// absent from scrapes for longer than this window even if it has no
	// deadline. Zero disables absence-based expiry; postings without a
	// deadline are then retained indefinitely.
	AbsenceGrace time.Duration
}
