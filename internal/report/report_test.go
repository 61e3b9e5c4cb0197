package report_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/fitdash/internal/dashboard"
	"github.com/KaramelBytes/fitdash/internal/dataset"
	"github.com/KaramelBytes/fitdash/internal/dataset/datasettest"
	"github.com/KaramelBytes/fitdash/internal/report"
)

func TestExportWritesBundle(t *testing.T) {
	f := datasettest.Frame(t)
	dir := filepath.Join(t.TempDir(), "snapshot")
	sel := dataset.Selection{Gender: "Female", AgeCategory: "Adult", Month: "February"}

	m, err := report.Export(f, sel, report.Options{Dir: dir, Dataset: "fixture.csv"})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "snapshot", m.Name)
	assert.Equal(t, sel, m.Selection)
	assert.Equal(t, datasettest.Rows, m.TotalRows)
	assert.Equal(t, []string{dashboard.PageHealth, dashboard.PageBusiness}, m.Pages)

	// Every chart, the workbook and the index page.
	assert.Len(t, m.Files, 40+2)
	for _, rel := range m.Files {
		_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
		assert.NoError(t, err, rel)
	}
	assert.Contains(t, m.Files, report.ChartFileName(dashboard.PageHealth, "overview-bmi-category"))

	index, err := os.ReadFile(filepath.Join(dir, report.IndexFileName))
	require.NoError(t, err)
	assert.Contains(t, string(index), dashboard.Title)
	assert.Contains(t, string(index), "charts/business-engagement-gender.svg")

	loaded, err := report.LoadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, m.ID, loaded.ID)
	assert.Equal(t, dir, loaded.RootDir())
}

func TestExportWorkbookSheets(t *testing.T) {
	f := datasettest.Frame(t)
	dir := t.TempDir()
	sel := dataset.Selection{Gender: dataset.All, AgeCategory: "Young", Month: "January"}
	m, err := report.Export(f, sel, report.Options{Dir: dir})
	require.NoError(t, err)

	wb, err := excelize.OpenFile(filepath.Join(dir, report.WorkbookFileName))
	require.NoError(t, err)
	defer wb.Close()
	assert.Equal(t, []string{report.SheetFiltered, report.SheetMetrics, dashboard.PageHealth, dashboard.PageBusiness}, wb.GetSheetList())

	rows, err := wb.GetRows(report.SheetFiltered)
	require.NoError(t, err)
	assert.Len(t, rows, m.FilteredRows+1)
	assert.Equal(t, dataset.ColParticipantID, rows[0][0])

	metrics, err := wb.GetRows(report.SheetMetrics)
	require.NoError(t, err)
	var found bool
	for _, r := range metrics {
		if len(r) == 5 && r[2] == "avg-heart-rate" {
			found = true
			assert.Equal(t, "109.5", r[4])
		}
	}
	assert.True(t, found, "avg-heart-rate on metrics sheet")
}

func TestExportLeavesNoWorkbookTempFiles(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)
	f := datasettest.Frame(t)

	_, err := report.Export(f, dataset.Selection{}, report.Options{Dir: filepath.Join(t.TempDir(), "out")})
	require.NoError(t, err)
	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportRefusesNonEmptyDir(t *testing.T) {
	f := datasettest.Frame(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("x"), 0o644))

	_, err := report.Export(f, dataset.Selection{}, report.Options{Dir: dir})
	require.Error(t, err)
	assert.True(t, errors.Is(err, report.ErrNotEmpty))

	_, err = report.Export(f, dataset.Selection{}, report.Options{Dir: dir, Force: true})
	require.NoError(t, err)
}

func TestExportEmptySelectionUsesPlaceholders(t *testing.T) {
	f := datasettest.Frame(t)
	dir := t.TempDir()
	m, err := report.Export(f, dataset.Selection{Gender: "Nobody"}, report.Options{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, 0, m.FilteredRows)

	svg, err := os.ReadFile(filepath.Join(dir, report.ChartFileName(dashboard.PageHealth, "overview-bmi-category")))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(svg), "No data for the current filters"))
}

func TestListNewestFirst(t *testing.T) {
	root := t.TempDir()
	older := report.NewManifest("older", filepath.Join(root, "a"))
	require.NoError(t, older.Save())
	newer := report.NewManifest("newer", filepath.Join(root, "b"))
	newer.CreatedAt = older.CreatedAt.Add(1)
	require.NoError(t, newer.Save())
	require.NoError(t, os.MkdirAll(filepath.Join(root, "stray"), 0o755))

	list, err := report.List(root)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].Name)

	none, err := report.List(filepath.Join(root, "missing"))
	require.NoError(t, err)
	assert.Empty(t, none)
}
