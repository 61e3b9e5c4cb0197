package dashboard

import (
	"github.com/KaramelBytes/fitdash/internal/dataset"
)

const (
	Title    = "FitLife Health and Fitness Tracking Dashboard"
	Subtitle = "Explore your health and fitness data with interactive visualizations."
)

// Series is one coloured run of values aligned with a chart's categories.
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Chart is a fully computed chart ready for drawing.
type Chart struct {
	ID         string   `json:"id"`
	Page       string   `json:"page"`
	Tab        string   `json:"tab"`
	Title      string   `json:"title"`
	Kind       Kind     `json:"kind"`
	XLabel     string   `json:"x_label,omitempty"`
	YLabel     string   `json:"y_label,omitempty"`
	Theme      Theme    `json:"theme"`
	Categories []string `json:"categories"`
	Series     []Series `json:"series"`
	// Colors has one entry per category for pies and per-category bars, otherwise
	// one per series.
	Colors []string `json:"colors"`
	Empty  bool     `json:"empty"`
}

// PerCategoryColors reports whether Colors is indexed by category.
func (c Chart) PerCategoryColors() bool {
	return len(c.Series) == 1 && len(c.Colors) == len(c.Categories) && len(c.Colors) > 1
}

// Total sums every plotted value.
func (c Chart) Total() float64 {
	var t float64
	for _, s := range c.Series {
		for _, v := range s.Values {
			t += v
		}
	}
	return t
}

// Metric is a headline number with its display string.
type Metric struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Value  string  `json:"value"`
	Number float64 `json:"number"`
	// OK is false when the value could not be computed (empty selection).
	OK bool `json:"ok"`
}

// Table is a small row preview.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// TabView is one rendered tab.
type TabView struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Heading string   `json:"heading"`
	Theme   Theme    `json:"theme"`
	Metrics []Metric `json:"metrics,omitempty"`
	Charts  []Chart  `json:"charts,omitempty"`
	Preview *Table   `json:"preview,omitempty"`
}

// NavItem is a page or tab link.
type NavItem struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Active bool   `json:"active"`
}

// ViewModel is everything a surface needs to draw the dashboard for one selection.
type ViewModel struct {
	Title        string                `json:"title"`
	Subtitle     string                `json:"subtitle"`
	Selection    dataset.Selection     `json:"selection"`
	Options      dataset.FilterOptions `json:"options"`
	Page         string                `json:"page"`
	PageTitle    string                `json:"page_title"`
	Tab          string                `json:"tab,omitempty"`
	Pages        []NavItem             `json:"pages"`
	Tabs         []NavItem             `json:"tabs"`
	TotalRows    int                   `json:"total_rows"`
	FilteredRows int                   `json:"filtered_rows"`
	Sections     []TabView             `json:"sections"`
}

// Charts flattens every chart across the rendered sections.
func (vm *ViewModel) Charts() []Chart {
	var out []Chart
	for _, s := range vm.Sections {
		out = append(out, s.Charts...)
	}
	return out
}

// Metrics flattens every metric across the rendered sections.
func (vm *ViewModel) Metrics() []Metric {
	var out []Metric
	for _, s := range vm.Sections {
		out = append(out, s.Metrics...)
	}
	return out
}
