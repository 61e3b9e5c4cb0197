package analysis_test

import (
	"strings"
	"testing"

	"github.com/KaramelBytes/fitdash/internal/analysis"
	"github.com/KaramelBytes/fitdash/internal/dataset"
	"github.com/KaramelBytes/fitdash/internal/dataset/datasettest"
)

func TestProfileAndMarkdown(t *testing.T) {
	f := datasettest.Frame(t)
	opt := analysis.DefaultOptions()
	opt.GroupBy = []string{dataset.ColGender, "nope"}
	opt.Correlations = true
	rep := analysis.Profile("sampled_data.csv", f, opt)

	if rep.Rows != datasettest.Rows {
		t.Fatalf("rows=%d", rep.Rows)
	}
	if len(rep.Cols) != len(f.Columns()) {
		t.Fatalf("cols=%d want %d", len(rep.Cols), len(f.Columns()))
	}
	var hyd, gender *analysis.ColumnSummary
	for i := range rep.Cols {
		switch rep.Cols[i].Name {
		case dataset.ColHydration:
			hyd = &rep.Cols[i]
		case dataset.ColGender:
			gender = &rep.Cols[i]
		}
	}
	if hyd == nil || hyd.Kind != "numeric" || hyd.Missing != 1 {
		t.Fatalf("hydration summary unexpected: %+v", hyd)
	}
	if gender == nil || gender.Kind != "categorical" || gender.Unique != 2 {
		t.Fatalf("gender summary unexpected: %+v", gender)
	}
	if len(rep.Groups) != 2 || rep.Groups[0].Size != 18 {
		t.Fatalf("groups unexpected: %+v", rep.Groups)
	}
	if rep.Corr == nil || rep.Corr.Values[0][0] != 1 {
		t.Fatalf("expected correlation matrix")
	}

	md := rep.Markdown()
	for _, want := range []string{
		"[DATASET SUMMARY]",
		"Source: sampled_data.csv",
		"- gender: categorical",
		"[GROUP-BY SUMMARY]",
		"gender=Female (n=18)",
		"[CORRELATIONS]",
		"[HEAD]",
		`group-by column "nope" not found`,
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestProfileEmptyFrame(t *testing.T) {
	f := datasettest.Frame(t)
	sub, err := f.Filter(dataset.Selection{Gender: "Other"})
	if err != nil {
		t.Fatal(err)
	}
	rep := analysis.Profile("", sub, analysis.DefaultOptions())
	if rep.Rows != 0 || len(rep.Samples) != 0 {
		t.Fatalf("expected empty report, got %+v", rep)
	}
	if !strings.Contains(rep.Markdown(), "no rows match") {
		t.Fatalf("expected empty-filter note")
	}
}
