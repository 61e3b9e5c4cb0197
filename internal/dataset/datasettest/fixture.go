// Package datasettest builds a small deterministic fitness table for tests.
//
// Rows are generated so that every (gender, age_category, month_name) combination
// appears exactly twice, which keeps expected counts easy to reason about.
package datasettest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/KaramelBytes/fitdash/internal/dataset"
)

var (
	Genders         = []string{"Male", "Female"}
	AgeCategories   = []string{"Young", "Adult", "Senior"}
	Months          = []string{"January", "February", "March"}
	Activities      = []string{"Running", "Cycling", "Yoga", "Swimming"}
	Intensities     = []string{"Low", "Medium", "High"}
	FitnessLevels   = []string{"Beginner", "Intermediate", "Advanced"}
	Conditions      = []string{"None", "Hypertension", "Diabetes"}
	WeightGroups    = []string{"Normal", "Overweight", "Underweight"}
	Rows            = 36
	BlankHydrations = []int{5}
)

var header = []string{
	dataset.ColParticipantID,
	dataset.ColGender,
	dataset.ColAgeCategory,
	dataset.ColMonth,
	dataset.ColActivityType,
	dataset.ColDuration,
	dataset.ColCalories,
	dataset.ColDailySteps,
	dataset.ColHoursSleep,
	dataset.ColBMI,
	dataset.ColAvgHeartRate,
	dataset.ColRestingHeartRate,
	dataset.ColStressLevel,
	dataset.ColHydration,
	dataset.ColIntensity,
	dataset.ColFitnessLevel,
	dataset.ColHealthCondition,
	dataset.ColWeightCategory,
}

// Records returns the header followed by Rows data rows.
func Records() [][]string {
	out := [][]string{append([]string(nil), header...)}
	for i := 0; i < Rows; i++ {
		hydration := strconv.FormatFloat(1.5+float64(i%4)*0.5, 'f', -1, 64)
		for _, b := range BlankHydrations {
			if b == i {
				hydration = ""
			}
		}
		out = append(out, []string{
			fmt.Sprintf("P%03d", i%12),
			Genders[i%2],
			AgeCategories[(i/2)%3],
			Months[(i/6)%3],
			Activities[i%4],
			strconv.Itoa(30 + i),
			strconv.Itoa(200 + 10*i),
			strconv.Itoa(5000 + 100*i),
			strconv.Itoa(6 + i%3),
			strconv.Itoa(20 + i%10),
			strconv.Itoa(100 + i),
			strconv.Itoa(60 + i%10),
			strconv.Itoa(1 + i%10),
			hydration,
			Intensities[i%3],
			FitnessLevels[(i/3)%3],
			Conditions[i%3],
			WeightGroups[(i+1)%3],
		})
	}
	return out
}

// Frame returns the fixture as a loaded frame.
func Frame(t testing.TB) *dataset.Frame {
	t.Helper()
	f, err := dataset.FromRecords(Records())
	if err != nil {
		t.Fatalf("fixture frame: %v", err)
	}
	return f
}

// WriteCSV writes records to dir/name and returns the path.
func WriteCSV(t testing.TB, dir, name string, records [][]string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	fh, err := os.Create(p)
	if err != nil {
		t.Fatalf("create %s: %v", p, err)
	}
	w := csv.NewWriter(fh)
	if err := w.WriteAll(records); err != nil {
		fh.Close()
		t.Fatalf("write %s: %v", p, err)
	}
	if err := fh.Close(); err != nil {
		t.Fatalf("close %s: %v", p, err)
	}
	return p
}
