// Package dashboard turns a filter selection into a ViewModel: every chart and
// metric of a page, computed from the filtered rows. Render is pure; callers own
// the selection state and decide how to draw the result.
package dashboard

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/KaramelBytes/fitdash/internal/analysis"
	"github.com/KaramelBytes/fitdash/internal/dataset"
)

var (
	ErrUnknownPage  = errors.New("unknown page")
	ErrUnknownTab   = errors.New("unknown tab")
	ErrUnknownChart = errors.New("unknown chart")
)

// NotAvailable is shown for metrics that cannot be computed on the selection.
const NotAvailable = "N/A"

// RenderOptions selects what to render.
type RenderOptions struct {
	// Page defaults to the first page.
	Page string
	// Tab defaults to the page's first tab unless AllTabs is set.
	Tab     string
	AllTabs bool
	// HistogramBins is passed to the binning of continuous columns; 0 picks automatically.
	HistogramBins int
	// PreviewRows bounds the filtered data preview; 0 means 5.
	PreviewRows int
}

// Render filters f by sel and computes the requested page.
func Render(f *dataset.Frame, sel dataset.Selection, opt RenderOptions) (*ViewModel, error) {
	if f == nil {
		return nil, errors.New("render: no dataset loaded")
	}
	page, tabs, err := resolve(opt)
	if err != nil {
		return nil, err
	}
	options := f.Options()
	sel = sel.Normalize(options)
	filtered, err := f.Filter(sel)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	vm := &ViewModel{
		Title:        Title,
		Subtitle:     Subtitle,
		Selection:    sel,
		Options:      options,
		Page:         page.ID,
		PageTitle:    page.Title,
		TotalRows:    f.Len(),
		FilteredRows: filtered.Len(),
	}
	if !opt.AllTabs {
		vm.Tab = tabs[0].ID
	}
	for _, p := range catalog {
		vm.Pages = append(vm.Pages, NavItem{ID: p.ID, Title: p.Title, Active: p.ID == page.ID})
	}
	for _, t := range page.Tabs {
		vm.Tabs = append(vm.Tabs, NavItem{ID: t.ID, Title: t.Title, Active: opt.AllTabs || t.ID == vm.Tab})
	}
	for _, t := range tabs {
		vm.Sections = append(vm.Sections, renderTab(page.ID, t, filtered, opt))
	}
	return vm, nil
}

// RenderChart computes a single chart by id for sel.
func RenderChart(f *dataset.Frame, sel dataset.Selection, chartID string, bins int) (Chart, error) {
	if f == nil {
		return Chart{}, errors.New("render: no dataset loaded")
	}
	page, tab, spec, ok := FindChart(chartID)
	if !ok {
		return Chart{}, fmt.Errorf("%w: %q", ErrUnknownChart, chartID)
	}
	filtered, err := f.Filter(sel.Normalize(f.Options()))
	if err != nil {
		return Chart{}, fmt.Errorf("render chart %s: %w", chartID, err)
	}
	return buildChart(page.ID, tab, spec, filtered, bins), nil
}

func resolve(opt RenderOptions) (PageSpec, []TabSpec, error) {
	pageID := opt.Page
	if pageID == "" {
		pageID = catalog[0].ID
	}
	page, ok := FindPage(pageID)
	if !ok {
		return PageSpec{}, nil, fmt.Errorf("%w: %q", ErrUnknownPage, pageID)
	}
	if opt.AllTabs {
		return page, page.Tabs, nil
	}
	if opt.Tab == "" {
		return page, page.Tabs[:1], nil
	}
	for _, t := range page.Tabs {
		if t.ID == opt.Tab {
			return page, []TabSpec{t}, nil
		}
	}
	return PageSpec{}, nil, fmt.Errorf("%w: %q on page %s", ErrUnknownTab, opt.Tab, page.ID)
}

func renderTab(pageID string, t TabSpec, f *dataset.Frame, opt RenderOptions) TabView {
	view := TabView{ID: t.ID, Title: t.Title, Heading: t.Heading, Theme: t.Theme}
	for _, m := range t.Metrics {
		view.Metrics = append(view.Metrics, computeMetric(m, f))
	}
	for _, c := range t.Charts {
		view.Charts = append(view.Charts, buildChart(pageID, t, c, f, opt.HistogramBins))
	}
	if t.Preview {
		n := opt.PreviewRows
		if n <= 0 {
			n = 5
		}
		view.Preview = &Table{Columns: f.Columns(), Rows: f.Rows(n)}
	}
	return view
}

func computeMetric(spec MetricSpec, f *dataset.Frame) Metric {
	m := Metric{ID: spec.ID, Label: spec.Label, Value: NotAvailable}
	switch spec.Kind {
	case MetricMean:
		mean, ok := analysis.Mean(f.Floats(spec.Column))
		if !ok {
			return m
		}
		m.Number, m.OK = mean, true
		if spec.Format == "" {
			m.Value = strconv.FormatFloat(analysis.Round(mean, 2), 'f', -1, 64)
		} else {
			m.Value = fmt.Sprintf(spec.Format, mean)
		}
	case MetricDistinct:
		n := analysis.Distinct(labels(f, spec.Column))
		m.Number, m.OK = float64(n), true
		m.Value = strconv.Itoa(n)
	case MetricMostFreq:
		label, ok := analysis.IdxMax(analysis.ValueCounts(labels(f, spec.Column)))
		if !ok {
			return m
		}
		m.Value, m.OK = label, true
	}
	return m
}

// labels returns a column as grouping keys; numeric columns are formatted compactly.
func labels(f *dataset.Frame, col string) []string {
	if !dataset.IsNumeric(col) {
		return f.Strings(col)
	}
	vals := f.Floats(col)
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = dataset.FormatFloat(v)
	}
	return out
}

func numbers(f *dataset.Frame, col string) []float64 {
	if col == "" || !dataset.IsNumeric(col) {
		return nil
	}
	return f.Floats(col)
}

func buildChart(pageID string, t TabSpec, spec ChartSpec, f *dataset.Frame, bins int) Chart {
	c := Chart{
		ID:     spec.ID,
		Page:   pageID,
		Tab:    t.ID,
		Title:  spec.Title,
		Kind:   spec.Kind,
		XLabel: spec.XLabel,
		YLabel: spec.YLabel,
		Theme:  t.Theme,
	}
	palette := spec.Palette
	if len(palette) == 0 {
		palette = PalettePlotly
	}
	name := spec.YLabel
	if name == "" {
		name = spec.Value
	}
	if name == "" {
		name = "count"
	}

	switch spec.Kind {
	case KindPie, KindBar:
		keys := labels(f, spec.Key)
		if spec.Agg == analysis.AggCount && spec.Value != "" && !dataset.IsNumeric(spec.Value) {
			keys = presentOnly(keys, f.Strings(spec.Value))
		}
		points := analysis.GroupBy(keys, numbers(f, spec.Value), spec.Agg)
		values := make([]float64, len(points))
		for i, p := range points {
			c.Categories = append(c.Categories, p.Label)
			values[i] = p.Value
		}
		if len(points) > 0 {
			c.Series = []Series{{Name: name, Values: values}}
		}
		if spec.Kind == KindBar && spec.Mono {
			c.Colors = cycle(palette, 1)
		} else {
			c.Colors = cycle(palette, len(c.Categories))
		}
	case KindGroupedBar:
		g := analysis.GroupBy2(labels(f, spec.Key), labels(f, spec.Series), numbers(f, spec.Value), spec.Agg)
		c.setGrouped(g, palette)
	case KindHistogram:
		hist := analysis.Histogram(f.Floats(spec.Value), bins)
		values := make([]float64, len(hist))
		for i, b := range hist {
			c.Categories = append(c.Categories, b.Label)
			values[i] = b.Count
		}
		if len(hist) > 0 {
			c.Series = []Series{{Name: name, Values: values}}
		}
		c.Colors = cycle(palette, 1)
	case KindGroupedHistogram:
		g := analysis.GroupedHistogram(f.Floats(spec.Value), labels(f, spec.Series), bins)
		c.setGrouped(g, palette)
	}
	c.Empty = len(c.Categories) == 0 || len(c.Series) == 0
	if c.Categories == nil {
		c.Categories = []string{}
	}
	if c.Series == nil {
		c.Series = []Series{}
	}
	return c
}

func (c *Chart) setGrouped(g analysis.Grouped, palette []string) {
	if g.Empty() {
		return
	}
	c.Categories = g.Categories
	for i, s := range g.Series {
		c.Series = append(c.Series, Series{Name: s, Values: g.Values[i]})
	}
	c.Colors = cycle(palette, len(g.Series))
}

// presentOnly blanks keys whose paired value is missing so they are not counted.
func presentOnly(keys, vals []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		if i < len(vals) && vals[i] != "" && vals[i] != "NaN" {
			out[i] = k
		}
	}
	return out
}
