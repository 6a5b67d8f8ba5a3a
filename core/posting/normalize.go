package posting

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"time"

	"golang.org/x/text/width"
)

// Clean normalizes page text for storage and display: folds full-width
// variants to their canonical half-width form, replaces non-breaking
// spaces, and collapses runs of whitespace. Letter case is preserved.
func Clean(s string) string {
	s = width.Fold.String(s)
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}

// keyNorm is the stricter normalization used only for identity hashing.
func keyNorm(s string) string {
	return strings.ToLower(Clean(s))
}

// KeyFor computes the identity key for a posting from its stable fields.
// Two candidates with equal normalized company, title and location always
// map to the same key, regardless of scrape order or formatting.
func KeyFor(company, title, location string) string {
	h := sha1.New()
	h.Write([]byte(keyNorm(company)))
	h.Write([]byte{'|'})
	h.Write([]byte(keyNorm(title)))
	h.Write([]byte{'|'})
	h.Write([]byte(keyNorm(location)))
	return hex.EncodeToString(h.Sum(nil))
}

// deadlineLayouts covers the date formats the source site has been seen
// to use. Anything else is kept as raw text with a nil parsed date.
var deadlineLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"2006年01月02日",
	"2006年1月2日",
}

// ParseDeadline parses a deadline cell into a calendar date. Empty text and
// non-date values ("长期有效", "招满为止") yield nil without error: they
// mean the posting has no stated deadline.
func ParseDeadline(s string) *time.Time {
	s = Clean(s)
	if s == "" {
		return nil
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &t
		}
	}
	return nil
}

// FromRaw validates a raw candidate and builds a Record with normalized
// display fields and a computed identity key. Timestamps and status are
// left zero: they belong to the reconciliation engine, not the extractor.
// A candidate missing a required field returns a *ValidationError.
func FromRaw(raw Raw) (Record, error) {
	title := Clean(raw.Title)
	company := Clean(raw.Company)

	if title == "" {
		return Record{}, &ValidationError{Field: "title", Reason: "empty"}
	}
	if company == "" {
		return Record{}, &ValidationError{Field: "company", Reason: "empty"}
	}

	location := Clean(raw.Location)
	deadlineRaw := Clean(raw.Deadline)

	return Record{
		IdentityKey: KeyFor(company, title, location),
		Title:       title,
		Company:     company,
		CompanyType: Clean(raw.CompanyType),
		Location:    location,
		CategoryTag: Clean(raw.Category),
		Target:      Clean(raw.Target),
		Deadline:    ParseDeadline(deadlineRaw),
		DeadlineRaw: deadlineRaw,
		UpdateTime:  Clean(raw.UpdateTime),
		DetailURL:   strings.TrimSpace(raw.DetailURL),
		NoticeURL:   strings.TrimSpace(raw.NoticeURL),
		Referral:    Clean(raw.Referral),
		Notes:       Clean(raw.Notes),
	}, nil
}
