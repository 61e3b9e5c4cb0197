package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/fitdash/internal/charts"
	"github.com/KaramelBytes/fitdash/internal/dashboard"
	"github.com/KaramelBytes/fitdash/internal/dataset"
	"github.com/KaramelBytes/fitdash/internal/dataset/datasettest"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(Config{Frame: datasettest.Frame(t), DatasetName: "fixture.csv"})
	require.NoError(t, err)
	return app
}

func get(t *testing.T, app *App, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	app.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestIndexRendersDefaultPage(t *testing.T) {
	rr := get(t, newTestApp(t), "/")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	body := rr.Body.String()
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, dashboard.Title)
	assert.Contains(t, body, `<option value="All" selected>`)
	assert.Contains(t, body, `id="chart-overview-bmi-category"`)
	assert.Contains(t, body, "<svg")
	assert.Contains(t, body, "Filtered Data Preview")
	assert.Contains(t, body, "4 of 36 rows")
}

func TestIndexSelectsTab(t *testing.T) {
	rr := get(t, newTestApp(t), "/?page=health&tab=heart-stress&gender=Female&age_category=Senior&month_name=March")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `id="chart-heart-stress-by-gender"`)
	assert.NotContains(t, body, `id="chart-overview-bmi-category"`)
	assert.Contains(t, body, `<option value="Senior" selected>`)
}

func TestIndexEmptySelectionShowsPlaceholders(t *testing.T) {
	rr := get(t, newTestApp(t), "/?page=business&all=true&gender=Nobody")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, charts.EmptyMessage)
	assert.Contains(t, body, dashboard.NotAvailable)
	assert.Contains(t, body, "0 of 36 rows")
}

func TestUnknownPageAndTabAre404(t *testing.T) {
	app := newTestApp(t)
	for _, target := range []string{"/?page=nope", "/api/view?page=business&tab=activity", "/charts/nope.svg"} {
		rr := get(t, app, target)
		require.Equal(t, http.StatusNotFound, rr.Code, target)
		var payload map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload), target)
		assert.Equal(t, "not_found", payload["type"], target)
		assert.NotEmpty(t, payload["detail"], target)
	}
}

func TestViewJSON(t *testing.T) {
	rr := get(t, newTestApp(t), "/api/view?page=business&all=true&age_category=Adult&month_name=February")
	require.Equal(t, http.StatusOK, rr.Code)
	var vm dashboard.ViewModel
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &vm))
	assert.Equal(t, dashboard.PageBusiness, vm.Page)
	assert.Equal(t, dataset.Selection{Gender: dataset.All, AgeCategory: "Adult", Month: "February"}, vm.Selection)
	assert.Len(t, vm.Sections, 3)
	assert.Len(t, vm.Charts(), 6)
}

func TestOptionsJSON(t *testing.T) {
	rr := get(t, newTestApp(t), "/api/options")
	require.Equal(t, http.StatusOK, rr.Code)
	var opts dataset.FilterOptions
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &opts))
	assert.Equal(t, append([]string{dataset.All}, datasettest.Genders...), opts.Genders)
	assert.Equal(t, datasettest.Months, opts.Months)
}

func TestChartSVG(t *testing.T) {
	rr := get(t, newTestApp(t), "/charts/activity-total-calories.svg?age_category=Adult&width=300&height=200")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/svg+xml", rr.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(strings.TrimSpace(rr.Body.String()), "<svg"))
	assert.Contains(t, rr.Body.String(), `width="300"`)
}

func TestDatasetProfile(t *testing.T) {
	rr := get(t, newTestApp(t), "/dataset?group_by=gender")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "fixture.csv")
	assert.Contains(t, body, "<ul>")
	assert.Contains(t, body, "GROUP-BY SUMMARY")
}

func TestExportXLSX(t *testing.T) {
	rr := get(t, newTestApp(t), "/export.xlsx?age_category=Young&month_name=January")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, xlsxContentType, rr.Header().Get("Content-Type"))

	wb, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	defer wb.Close()
	rows, err := wb.GetRows("filtered")
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestHealthzAndMetrics(t *testing.T) {
	app := newTestApp(t)
	rr := get(t, app, "/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())

	get(t, app, "/")
	rr = get(t, app, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "fitdash_dashboard_renders_total")
}

func TestLegend(t *testing.T) {
	pie := dashboard.Chart{Kind: dashboard.KindPie, Categories: []string{"a", "b"},
		Series: []dashboard.Series{{Name: "count", Values: []float64{1, 2}}}, Colors: []string{"111111", "222222"}}
	assert.Equal(t, []legendEntry{{"a", "#111111"}, {"b", "#222222"}}, legend(pie))

	mono := dashboard.Chart{Kind: dashboard.KindHistogram, Categories: []string{"1", "2"},
		Series: []dashboard.Series{{Name: "count", Values: []float64{1, 2}}}, Colors: []string{"333333"}}
	assert.Nil(t, legend(mono))

	grouped := dashboard.Chart{Kind: dashboard.KindGroupedBar, Categories: []string{"x"},
		Series: []dashboard.Series{{Name: "s1", Values: []float64{1}}, {Name: "s2", Values: []float64{2}}}, Colors: []string{"444444", "555555"}}
	assert.Equal(t, []legendEntry{{"s1", "#444444"}, {"s2", "#555555"}}, legend(grouped))
}
