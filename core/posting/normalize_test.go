package posting

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestKeyFor_NormalizationStability tests that incidental formatting
// differences never change the identity key.
func TestKeyFor_NormalizationStability(t *testing.T) {
	base := KeyFor("华为", "软件开发 工程师", "深圳")

	tests := []struct {
		name     string
		company  string
		title    string
		location string
	}{
		{"surrounding whitespace", "  华为 ", "软件开发 工程师", "深圳\t"},
		{"whitespace runs collapse", "华为", "软件开发   工程师", "深圳"},
		{"non-breaking space", "华为", "软件开发 工程师", "深圳"},
		{"tabs and newlines", "华为", "软件开发\t\n工程师", "深圳"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, base, KeyFor(tt.company, tt.title, tt.location))
		})
	}
}

func TestKeyFor_CaseAndWidthFolding(t *testing.T) {
	a := KeyFor("Acme", "SWE", "NYC")
	b := KeyFor("acme", "swe", "nyc")
	assert.Equal(t, a, b)

	// Full-width Latin letters fold to their ASCII counterparts.
	c := KeyFor("Ａｃｍｅ", "ＳＷＥ", "ＮＹＣ")
	assert.Equal(t, a, c)
}

func TestKeyFor_DistinctFields(t *testing.T) {
	assert.NotEqual(t, KeyFor("a", "b", "c"), KeyFor("a", "b", "d"))
	// Field boundaries matter: "ab"+"c" must not collide with "a"+"bc".
	assert.NotEqual(t, KeyFor("ab", "c", ""), KeyFor("a", "bc", ""))
}

func TestParseDeadline(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string // "" means nil
	}{
		{"iso", "2025-06-01", "2025-06-01"},
		{"slashes", "2025/06/01", "2025-06-01"},
		{"dots", "2025.06.01", "2025-06-01"},
		{"chinese date", "2025年6月1日", "2025-06-01"},
		{"full-width digits", "２０２５-０６-０１", "2025-06-01"},
		{"empty", "", ""},
		{"open ended", "长期有效", ""},
		{"until filled", "招满为止", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDeadline(tt.in)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
		})
	}
}

func TestFromRaw_Valid(t *testing.T) {
	rec, err := FromRaw(Raw{
		Title:    " SWE ",
		Company:  "Acme",
		Location: "NYC",
		Category: "校招",
		Deadline: "2025-06-01",
	})
	require.NoError(t, err)

	assert.Equal(t, "SWE", rec.Title)
	assert.Equal(t, "Acme", rec.Company)
	assert.Equal(t, KeyFor("Acme", "SWE", "NYC"), rec.IdentityKey)
	require.NotNil(t, rec.Deadline)
	assert.Equal(t, "2025-06-01", rec.Deadline.Format("2006-01-02"))
	assert.Equal(t, "2025-06-01", rec.DeadlineRaw)
	assert.True(t, rec.FirstSeenAt.IsZero(), "timestamps belong to the engine")
}

func TestFromRaw_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		raw   Raw
		field string
	}{
		{"missing title", Raw{Company: "Acme"}, "title"},
		{"whitespace title", Raw{Title: "   ", Company: "Acme"}, "title"},
		{"missing company", Raw{Title: "SWE"}, "company"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromRaw(tt.raw)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestFromRaw_UnparseableDeadlineKeptVerbatim(t *testing.T) {
	rec, err := FromRaw(Raw{Title: "SWE", Company: "Acme", Deadline: "详见公告"})
	require.NoError(t, err)
	assert.Nil(t, rec.Deadline)
	assert.Equal(t, "详见公告", rec.DeadlineRaw)
	assert.False(t, rec.ExpiredBy(time.Now()), "no parsed deadline, never expires")
}

func TestExpiredBy_DayGranularity(t *testing.T) {
	deadline := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rec := Record{Deadline: &deadline}

	// Expiring today is still active, even late in the day.
	assert.False(t, rec.ExpiredBy(time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)))
	assert.False(t, rec.ExpiredBy(time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)))
	assert.True(t, rec.ExpiredBy(time.Date(2025, 6, 2, 0, 1, 0, 0, time.UTC)))
}

func TestSameListing(t *testing.T) {
	d := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	a := Record{Title: "SWE", Company: "Acme", Location: "NYC", Deadline: &d, DeadlineRaw: "2025-06-01"}

	b := a
	assert.True(t, a.SameListing(b))

	// Engine state never participates.
	b.FirstSeenAt = time.Now()
	b.LastSeenAt = time.Now()
	b.Status = StatusUpdated
	assert.True(t, a.SameListing(b))

	c := a
	c.Title = "Senior SWE"
	assert.False(t, a.SameListing(c))

	e := a
	e.Deadline = nil
	e.DeadlineRaw = ""
	assert.False(t, a.SameListing(e))
}
