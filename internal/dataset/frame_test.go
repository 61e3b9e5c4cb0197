package dataset_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/fitdash/internal/dataset"
	"github.com/KaramelBytes/fitdash/internal/dataset/datasettest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoadCSV(t *testing.T) {
	p := datasettest.WriteCSV(t, t.TempDir(), "sampled_data.csv", datasettest.Records())
	f, err := dataset.Load(p, dataset.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, datasettest.Rows, f.Len())
	assert.True(t, f.Has(dataset.ColWeightCategory))

	hyd := f.Floats(dataset.ColHydration)
	require.Len(t, hyd, datasettest.Rows)
	assert.True(t, math.IsNaN(hyd[5]), "blank numeric cell should load as NaN")
	assert.Equal(t, "P000", f.Strings(dataset.ColParticipantID)[0])
}

func TestLoadTSVAndTrimsCells(t *testing.T) {
	recs := datasettest.Records()
	recs[1][1] = "  Male "
	dir := t.TempDir()
	p := filepath.Join(dir, "data.tsv")
	var body []byte
	for _, r := range recs {
		for i, c := range r {
			if i > 0 {
				body = append(body, '\t')
			}
			body = append(body, c...)
		}
		body = append(body, '\n')
	}
	require.NoError(t, os.WriteFile(p, body, 0o644))

	f, err := dataset.Load(p, dataset.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Male", f.Strings(dataset.ColGender)[0])
}

func TestLoadXLSX(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "data.xlsx")
	x := excelize.NewFile()
	require.NoError(t, x.SetSheetName("Sheet1", "tracking"))
	for i, rec := range datasettest.Records() {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := make([]interface{}, len(rec))
		for j, v := range rec {
			row[j] = v
		}
		require.NoError(t, x.SetSheetRow("tracking", cell, &row))
	}
	require.NoError(t, x.SaveAs(p))
	require.NoError(t, x.Close())

	f, err := dataset.Load(p, dataset.LoadOptions{Sheet: "Tracking"})
	require.NoError(t, err)
	assert.Equal(t, datasettest.Rows, f.Len())

	_, err = dataset.Load(p, dataset.LoadOptions{Sheet: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available sheets: tracking")
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	recs := datasettest.Records()

	missingCol := make([][]string, len(recs))
	for i, r := range recs {
		missingCol[i] = r[1:]
	}

	cases := []struct {
		name string
		path func() string
		want error
	}{
		{"not found", func() string { return filepath.Join(dir, "absent.csv") }, dataset.ErrNotFound},
		{"unsupported", func() string {
			p := filepath.Join(dir, "data.json")
			_ = os.WriteFile(p, []byte("{}"), 0o644)
			return p
		}, dataset.ErrUnsupportedFormat},
		{"header only", func() string { return datasettest.WriteCSV(t, dir, "header.csv", recs[:1]) }, dataset.ErrNoRows},
		{"empty file", func() string {
			p := filepath.Join(dir, "empty.csv")
			_ = os.WriteFile(p, nil, 0o644)
			return p
		}, dataset.ErrNoRows},
		{"missing column", func() string { return datasettest.WriteCSV(t, dir, "cols.csv", missingCol) }, dataset.ErrMissingColumn},
		{"bad quoting", func() string {
			p := filepath.Join(dir, "quote.csv")
			_ = os.WriteFile(p, []byte("a,b\n\"x,y\n1,\"2\"3\n"), 0o644)
			return p
		}, dataset.ErrMalformed},
		{"ragged row", func() string {
			p := filepath.Join(dir, "ragged.csv")
			_ = os.WriteFile(p, []byte("a,b\n1,2,3\n"), 0o644)
			return p
		}, dataset.ErrMalformed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dataset.Load(tc.path(), dataset.LoadOptions{})
			require.Error(t, err)
			var le *dataset.LoadError
			require.True(t, errors.As(err, &le), "want *LoadError, got %T", err)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestMissingColumnsAreNamed(t *testing.T) {
	recs := datasettest.Records()
	trimmed := make([][]string, len(recs))
	for i, r := range recs {
		trimmed[i] = r[:len(r)-1]
	}
	_, err := dataset.FromRecords(trimmed)
	require.ErrorIs(t, err, dataset.ErrMissingColumn)
	assert.Contains(t, err.Error(), dataset.ColWeightCategory)
}

func TestRowsFormatting(t *testing.T) {
	f := datasettest.Frame(t)
	rows := f.Rows(6)
	require.Len(t, rows, 6)
	cols := f.Columns()
	require.Len(t, rows[0], len(cols))
	idx := map[string]int{}
	for i, c := range cols {
		idx[c] = i
	}
	assert.Equal(t, "30", rows[0][idx[dataset.ColDuration]])
	assert.Equal(t, "1.5", rows[0][idx[dataset.ColHydration]])
	assert.Equal(t, "", rows[5][idx[dataset.ColHydration]])

	assert.Len(t, f.Rows(-1), datasettest.Rows)
	assert.Len(t, f.Rows(1000), datasettest.Rows)
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "", dataset.FormatFloat(math.NaN()))
	assert.Equal(t, "42", dataset.FormatFloat(42))
	assert.Equal(t, "2.25", dataset.FormatFloat(2.25))
}

func TestFloatsTreatsInfinityAsMissing(t *testing.T) {
	recs := datasettest.Records()
	recs[1][6] = "Inf"
	recs[2][6] = "-Inf"
	f, err := dataset.FromRecords(recs)
	require.NoError(t, err)

	cal := f.Floats(dataset.ColCalories)
	assert.True(t, math.IsNaN(cal[0]))
	assert.True(t, math.IsNaN(cal[1]))
	assert.Equal(t, 220.0, cal[2])
}
