package reconcile

import (
	"sort"
	"time"

	"jobwatch/core/posting"

	mapset "github.com/deckarep/golang-set/v2"
)

// Reconcile merges incoming candidates into the existing keyed collection
// and returns the updated collection together with a Diff of the pass.
// The existing map is never mutated.
//
// refDate is the date deadlines are evaluated against and the timestamp
// stamped onto first/last-seen fields; the caller supplies it so runs are
// reproducible.
func Reconcile(existing map[string]posting.Record, incoming []posting.Raw, refDate time.Time, opts Options) (map[string]posting.Record, Diff) {
	var diff Diff

	// Validate and key the candidates. Duplicates within one batch collapse
	// to the last occurrence, keeping the first occurrence's position, so a
	// posting scraped on two pages is classified once.
	order := make([]string, 0, len(incoming))
	candidates := make(map[string]posting.Record, len(incoming))
	for _, raw := range incoming {
		rec, err := posting.FromRaw(raw)
		if err != nil {
			diff.Summary.Skipped++
			diff.SkipReasons = append(diff.SkipReasons, err.Error())
			continue
		}
		if _, dup := candidates[rec.IdentityKey]; !dup {
			order = append(order, rec.IdentityKey)
		}
		candidates[rec.IdentityKey] = rec
	}

	updated := make(map[string]posting.Record, len(existing)+len(candidates))

	for _, key := range order {
		cand := candidates[key]
		prev, known := existing[key]

		switch {
		case !known:
			cand.FirstSeenAt = refDate
			cand.LastSeenAt = refDate
			cand.Status = posting.StatusNew
			updated[key] = cand
			diff.Summary.New++
			diff.NewRecords = append(diff.NewRecords, cand)

		case prev.SameListing(cand):
			rec := prev
			rec.LastSeenAt = refDate
			rec.Status = posting.StatusUnchanged
			updated[key] = rec
			diff.Summary.Unchanged++

		default:
			// Incoming fields win; first-seen survives from the stored record.
			cand.FirstSeenAt = prev.FirstSeenAt
			cand.LastSeenAt = refDate
			cand.Status = posting.StatusUpdated
			updated[key] = cand
			diff.Summary.Updated++
			diff.UpdatedRecords = append(diff.UpdatedRecords, cand)
		}
	}

	// Walk stored postings the scrape did not re-supply: retain them unless
	// expired. Keys are sorted so the expired list is deterministic.
	existingKeys := mapset.NewThreadUnsafeSet[string]()
	for key := range existing {
		existingKeys.Add(key)
	}
	incomingKeys := mapset.NewThreadUnsafeSet(order...)

	absent := existingKeys.Difference(incomingKeys).ToSlice()
	sort.Strings(absent)

	for _, key := range absent {
		prev := existing[key]
		if expiredAbsent(prev, refDate, opts) {
			diff.Summary.Expired++
			diff.ExpiredKeys = append(diff.ExpiredKeys, key)
			continue
		}
		rec := prev
		rec.Status = posting.StatusUnchanged
		updated[key] = rec
	}

	return updated, diff
}

// expiredAbsent decides whether a stored posting absent from this scrape is
// removed: its deadline lies before the reference date, or the optional
// absence grace window has elapsed since it was last seen.
func expiredAbsent(rec posting.Record, refDate time.Time, opts Options) bool {
	if rec.ExpiredBy(refDate) {
		return true
	}
	if opts.AbsenceGrace > 0 && !rec.LastSeenAt.IsZero() {
		return refDate.Sub(rec.LastSeenAt) > opts.AbsenceGrace
	}
	return false
}
