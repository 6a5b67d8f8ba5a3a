package api_test

import (
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"jobwatch/core/dataset"
	"jobwatch/core/posting"
	"jobwatch/core/reconcile"
	"jobwatch/core/report"
	"jobwatch/feature/api"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testApp(t *testing.T) (*fiber.App, *dataset.Store, string) {
	t.Helper()
	dir := t.TempDir()
	store := dataset.NewStore(dataset.Config{
		Path:       filepath.Join(dir, "postings.json"),
		ReportPath: filepath.Join(dir, "report.json"),
	})

	reportPath := filepath.Join(dir, "report.json")
	app := fiber.New()
	feature := api.NewFeature(store, reportPath, zap.NewNop())
	require.NoError(t, feature.Load(app))
	return app, store, reportPath
}

func seedStore(t *testing.T, store *dataset.Store) posting.Record {
	t.Helper()
	rec := posting.Record{
		IdentityKey: posting.KeyFor("华为", "软件开发工程师", "深圳"),
		Company:     "华为",
		Title:       "软件开发工程师",
		Location:    "深圳",
		DeadlineRaw: "2025-10-31",
		FirstSeenAt: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		LastSeenAt:  time.Date(2025, 8, 21, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(map[string]posting.Record{rec.IdentityKey: rec}))
	return rec
}

func TestListPostings(t *testing.T) {
	app, store, _ := testApp(t)
	seedStore(t, store)

	res, err := app.Test(httptest.NewRequest("GET", "/postings", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var body struct {
		Count    int              `json:"count"`
		Postings []posting.Record `json:"postings"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Postings, 1)
	assert.Equal(t, "华为", body.Postings[0].Company)
}

func TestListPostingsEmptyDataset(t *testing.T) {
	app, _, _ := testApp(t)

	res, err := app.Test(httptest.NewRequest("GET", "/postings", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Zero(t, body.Count)
}

func TestGetPostingByKey(t *testing.T) {
	app, store, _ := testApp(t)
	rec := seedStore(t, store)

	res, err := app.Test(httptest.NewRequest("GET", "/postings/"+rec.IdentityKey, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var got posting.Record
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	assert.Equal(t, rec.IdentityKey, got.IdentityKey)
	assert.Equal(t, "软件开发工程师", got.Title)
}

func TestGetPostingNotFound(t *testing.T) {
	app, store, _ := testApp(t)
	seedStore(t, store)

	res, err := app.Test(httptest.NewRequest("GET", "/postings/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestGetReport(t *testing.T) {
	app, _, reportPath := testApp(t)

	ref := time.Date(2025, 8, 21, 0, 0, 0, 0, time.UTC)
	rep := report.Build(reconcile.Diff{
		Summary: reconcile.Summary{New: 2},
	}, ref, 10)
	require.NoError(t, report.Save(reportPath, rep))

	res, err := app.Test(httptest.NewRequest("GET", "/report", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var got report.Report
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	assert.Equal(t, 2, got.Summary.New)
	assert.Equal(t, 10, got.TotalActive)
}

func TestGetReportBeforeFirstRun(t *testing.T) {
	app, _, _ := testApp(t)

	res, err := app.Test(httptest.NewRequest("GET", "/report", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}
