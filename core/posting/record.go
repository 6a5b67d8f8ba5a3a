package posting

import (
	"fmt"
	"time"
)

// Status classifies a record relative to the previous run.
// It is recomputed on every reconciliation pass and never persisted.
type Status string

const (
	// StatusNew marks a posting seen for the first time this run.
	StatusNew Status = "new"
	// StatusUpdated marks a posting whose displayed fields changed.
	StatusUpdated Status = "updated"
	// StatusUnchanged marks a posting that reappeared identically.
	StatusUnchanged Status = "unchanged"
	// StatusExpired marks a posting whose deadline has passed.
	StatusExpired Status = "expired"
)

// Raw is one posting candidate as produced by the extractor.
// All fields are verbatim page text; nothing is validated or normalized yet.
type Raw struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	CompanyType string `json:"company_type"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Target      string `json:"target"`
	Deadline    string `json:"deadline"`
	UpdateTime  string `json:"update_time"`
	DetailURL   string `json:"detail_url"`
	NoticeURL   string `json:"notice_url"`
	Referral    string `json:"referral"`
	Notes       string `json:"notes"`
}

// Record is the canonical, validated representation of one job posting.
type Record struct {
	// IdentityKey uniquely identifies the posting across scrape runs.
	IdentityKey string `json:"identity_key"`

	// Title is the position name. Required.
	Title string `json:"title"`

	// Company is the hiring company. Required.
	Company string `json:"company"`

	// CompanyType describes the employer (state-owned, private, foreign...).
	CompanyType string `json:"company_type,omitempty"`

	// Location is the work location as listed.
	Location string `json:"location,omitempty"`

	// CategoryTag classifies the posting (campus vs internship).
	// Used for filtering and display, never for identity.
	CategoryTag string `json:"category_tag,omitempty"`

	// Target is the cohort the posting addresses (e.g. class of 2026).
	Target string `json:"target,omitempty"`

	// Deadline is the application deadline. Nil means no stated deadline;
	// such postings never expire by date.
	Deadline *time.Time `json:"deadline"`

	// DeadlineRaw keeps the source's verbatim deadline text for display,
	// including values that do not parse as dates ("长期有效" etc).
	DeadlineRaw string `json:"deadline_raw,omitempty"`

	// UpdateTime is the site's own "last updated" text, verbatim.
	UpdateTime string `json:"update_time,omitempty"`

	// DetailURL links to the application page.
	DetailURL string `json:"detail_url,omitempty"`

	// NoticeURL links to the official announcement, when present.
	NoticeURL string `json:"notice_url,omitempty"`

	// Referral is the referral code listed with the posting.
	Referral string `json:"referral,omitempty"`

	// Notes carries free-form remarks (degree requirements etc).
	Notes string `json:"notes,omitempty"`

	// FirstSeenAt is set once, on the run that first observed the posting.
	FirstSeenAt time.Time `json:"first_seen_at"`

	// LastSeenAt is bumped on every run where the posting reappears.
	LastSeenAt time.Time `json:"last_seen_at"`

	// Status is the classification of the most recent run.
	Status Status `json:"-"`
}

// ExpiredBy reports whether the record's deadline lies strictly before the
// reference date. Comparison is at day granularity; a posting expiring
// today is still active. Records without a deadline never expire by date.
func (r Record) ExpiredBy(ref time.Time) bool {
	if r.Deadline == nil {
		return false
	}
	d := r.Deadline
	dy, dm, dd := d.Date()
	ry, rm, rd := ref.Date()
	deadline := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	refDay := time.Date(ry, rm, rd, 0, 0, 0, 0, time.UTC)
	return deadline.Before(refDay)
}

// SameListing reports whether all displayed fields match. Timestamps and
// status are engine state and do not participate.
func (r Record) SameListing(o Record) bool {
	if r.Title != o.Title ||
		r.Company != o.Company ||
		r.CompanyType != o.CompanyType ||
		r.Location != o.Location ||
		r.CategoryTag != o.CategoryTag ||
		r.Target != o.Target ||
		r.DeadlineRaw != o.DeadlineRaw ||
		r.UpdateTime != o.UpdateTime ||
		r.DetailURL != o.DetailURL ||
		r.NoticeURL != o.NoticeURL ||
		r.Referral != o.Referral ||
		r.Notes != o.Notes {
		return false
	}
	return equalDate(r.Deadline, o.Deadline)
}

func equalDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// ValidationError reports a malformed candidate rejected at the boundary.
type ValidationError struct {
	// Field is the offending field name.
	Field string
	// Reason explains why the field was rejected.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid posting: field %s: %s", e.Field, e.Reason)
}
