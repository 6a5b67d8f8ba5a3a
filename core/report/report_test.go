package report

import (
	"path/filepath"
	"testing"
	"time"

	"jobwatch/core/posting"
	"jobwatch/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_CarriesDiffThrough(t *testing.T) {
	ref := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	diff := reconcile.Diff{
		Summary: reconcile.Summary{New: 2, Updated: 1, Unchanged: 5, Expired: 1},
		NewRecords: []posting.Record{
			{Title: "SWE", Company: "Zeta"},
			{Title: "SWE", Company: "Acme"},
		},
		UpdatedRecords: []posting.Record{{Title: "PM", Company: "Globex"}},
	}

	r := Build(diff, ref, 8)

	assert.False(t, r.NoUpdates)
	assert.Equal(t, 8, r.TotalActive)
	assert.Equal(t, diff.Summary, r.Summary)
	// Encounter order from the diff is preserved verbatim.
	require.Len(t, r.New, 2)
	assert.Equal(t, "Zeta", r.New[0].Company)
	assert.Equal(t, "Acme", r.New[1].Company)
	assert.Contains(t, r.Subject(), "新增 2")
}

func TestBuild_NoUpdates(t *testing.T) {
	ref := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	// Expiries alone do not make a "changed" report.
	diff := reconcile.Diff{Summary: reconcile.Summary{Unchanged: 3, Expired: 2}}
	r := Build(diff, ref, 3)

	assert.True(t, r.NoUpdates)
	assert.Empty(t, r.New)
	assert.Contains(t, r.Subject(), "无更新")
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	ref := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	in := Build(reconcile.Diff{
		Summary:    reconcile.Summary{New: 1},
		NewRecords: []posting.Record{{IdentityKey: "k", Title: "SWE", Company: "Acme"}},
	}, ref, 1)

	require.NoError(t, Save(path, in))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in.Summary, out.Summary)
	assert.Equal(t, in.New, out.New)
	assert.True(t, in.ReferenceDate.Equal(out.ReferenceDate))
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
