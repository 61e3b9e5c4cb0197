package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordRender(t *testing.T) {
	before := testutil.ToFloat64(rendersTotal.WithLabelValues("health", "all"))
	RecordRender("health", "", 7, 3*time.Millisecond)
	if got := testutil.ToFloat64(rendersTotal.WithLabelValues("health", "all")); got != before+1 {
		t.Fatalf("renders_total=%v want %v", got, before+1)
	}
	if got := testutil.ToFloat64(filteredRows); got != 7 {
		t.Fatalf("filtered_rows=%v", got)
	}
}

func TestRecordChartFailureAndRows(t *testing.T) {
	RecordChartFailure("activity-bmi")
	if got := testutil.ToFloat64(chartFailures.WithLabelValues("activity-bmi")); got < 1 {
		t.Fatalf("chart failures=%v", got)
	}
	RecordDatasetRows(42)
	if got := testutil.ToFloat64(datasetRows); got != 42 {
		t.Fatalf("rows=%v", got)
	}
}
