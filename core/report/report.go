package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"jobwatch/core/posting"
	"jobwatch/core/reconcile"
)

// Report carries everything a notifier or exporter needs to render one
// run's outcome.
type Report struct {
	// GeneratedAt is when the report was built.
	GeneratedAt time.Time `json:"generated_at"`

	// ReferenceDate is the date the run evaluated deadlines against.
	ReferenceDate time.Time `json:"reference_date"`

	// Summary holds the reconciliation counts.
	Summary reconcile.Summary `json:"summary"`

	// TotalActive is the size of the dataset after the run.
	TotalActive int `json:"total_active"`

	// New lists new postings in encounter order.
	New []posting.Record `json:"new"`

	// Updated lists updated postings in encounter order.
	Updated []posting.Record `json:"updated"`

	// NoUpdates is set when the run produced nothing new or updated,
	// letting the notifier suppress the send.
	NoUpdates bool `json:"no_updates"`
}

// Build constructs a Report from a reconciliation diff. totalActive is the
// record count of the saved dataset.
func Build(diff reconcile.Diff, refDate time.Time, totalActive int) Report {
	return Report{
		GeneratedAt:   time.Now().UTC(),
		ReferenceDate: refDate,
		Summary:       diff.Summary,
		TotalActive:   totalActive,
		New:           diff.NewRecords,
		Updated:       diff.UpdatedRecords,
		NoUpdates:     !diff.Summary.Changed(),
	}
}

// Subject builds the notification subject line for the report.
func (r Report) Subject() string {
	date := r.ReferenceDate.Format("2006-01-02")
	if r.NoUpdates {
		return fmt.Sprintf("招聘信息 %s：无更新", date)
	}
	return fmt.Sprintf("招聘信息 %s：新增 %d，更新 %d", date, r.Summary.New, r.Summary.Updated)
}

// Save persists the report as JSON with the same write-then-rename scheme
// the dataset store uses.
func Save(path string, r Report) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save report: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".report-*.json")
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

// Load reads a previously persisted report.
func Load(path string) (Report, error) {
	var r Report
	b, err := os.ReadFile(path)
	if err != nil {
		return r, fmt.Errorf("load report: %w", err)
	}
	if err := json.Unmarshal(b, &r); err != nil {
		return r, fmt.Errorf("load report: %w", err)
	}
	return r, nil
}
