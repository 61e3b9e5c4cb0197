package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	rendersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitdash",
		Subsystem: "dashboard",
		Name:      "renders_total",
		Help:      "Dashboard views rendered, by page and tab.",
	}, []string{"page", "tab"})
	renderDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fitdash",
		Subsystem: "dashboard",
		Name:      "render_duration_seconds",
		Help:      "Time spent filtering and aggregating one view.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
	}, []string{"page"})
	chartFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitdash",
		Subsystem: "charts",
		Name:      "render_failures_total",
		Help:      "Charts that failed to draw and fell back to a placeholder.",
	}, []string{"chart"})
	datasetRows = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fitdash",
		Subsystem: "dataset",
		Name:      "rows",
		Help:      "Rows in the loaded dataset.",
	})
	filteredRows = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fitdash",
		Subsystem: "dataset",
		Name:      "filtered_rows",
		Help:      "Rows matched by the most recent selection.",
	})
)

func init() {
	prometheus.MustRegister(rendersTotal, renderDuration, chartFailures, datasetRows, filteredRows)
}

// RecordRender counts one rendered view and its duration.
func RecordRender(page, tab string, filtered int, elapsed time.Duration) {
	if tab == "" {
		tab = "all"
	}
	rendersTotal.WithLabelValues(page, tab).Inc()
	renderDuration.WithLabelValues(page).Observe(elapsed.Seconds())
	filteredRows.Set(float64(filtered))
}

// RecordChartFailure counts a chart that could not be drawn.
func RecordChartFailure(chartID string) {
	chartFailures.WithLabelValues(chartID).Inc()
}

// RecordDatasetRows publishes the loaded row count.
func RecordDatasetRows(n int) {
	datasetRows.Set(float64(n))
}
