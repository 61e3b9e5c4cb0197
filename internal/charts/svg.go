// Package charts draws dashboard charts as SVG with go-chart.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"math"

	"github.com/KaramelBytes/fitdash/internal/dashboard"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// EmptyMessage is drawn when a chart has nothing to plot.
const EmptyMessage = "No data for the current filters"

// ErrNothingToDraw is returned by Draw for empty or all-zero charts.
var ErrNothingToDraw = errors.New("nothing to draw")

// Options sizes the rendered charts.
type Options struct {
	Width  int
	Height int
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 480
	}
	if o.Height <= 0 {
		o.Height = 360
	}
	return o
}

// SVG renders c, falling back to a placeholder when there is nothing to plot.
// Errors from go-chart are returned alongside the placeholder so callers can log them.
func SVG(c dashboard.Chart, opt Options) ([]byte, error) {
	var buf bytes.Buffer
	err := Draw(&buf, c, opt)
	if err == nil {
		return buf.Bytes(), nil
	}
	buf.Reset()
	if perr := Placeholder(&buf, c.Title, EmptyMessage, c.Theme, opt); perr != nil {
		return nil, perr
	}
	if errors.Is(err, ErrNothingToDraw) {
		return buf.Bytes(), nil
	}
	return buf.Bytes(), fmt.Errorf("draw %s: %w", c.ID, err)
}

// Draw writes c as SVG. It returns ErrNothingToDraw for empty or all-zero charts.
func Draw(w io.Writer, c dashboard.Chart, opt Options) error {
	opt = opt.withDefaults()
	if c.Empty || len(c.Categories) == 0 || len(c.Series) == 0 || maxValue(c) <= 0 {
		return ErrNothingToDraw
	}
	switch c.Kind {
	case dashboard.KindPie:
		return drawPie(w, c, opt)
	case dashboard.KindBar, dashboard.KindHistogram:
		if len(c.Series) == 1 {
			return drawBar(w, c, opt)
		}
		return drawStacked(w, c, opt)
	case dashboard.KindGroupedBar, dashboard.KindGroupedHistogram:
		return drawStacked(w, c, opt)
	default:
		return fmt.Errorf("unsupported chart kind %q", c.Kind)
	}
}

func hex(s string) drawing.Color { return drawing.ColorFromHex(s) }

// label escapes s for an SVG text node; go-chart writes text bodies verbatim.
func label(s string) string { return html.EscapeString(s) }

func themeStyles(t dashboard.Theme) (background, canvas, text chart.Style) {
	tc := t.Colors()
	background = chart.Style{FillColor: hex(tc.Background), Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}}
	canvas = chart.Style{FillColor: hex(tc.Plot)}
	text = chart.Style{FontColor: hex(tc.Text), StrokeColor: hex(tc.Grid)}
	return
}

func colorAt(c dashboard.Chart, i int) drawing.Color {
	if len(c.Colors) == 0 {
		return hex(dashboard.PalettePlotly[i%len(dashboard.PalettePlotly)])
	}
	return hex(c.Colors[i%len(c.Colors)])
}

func drawPie(w io.Writer, c dashboard.Chart, opt Options) error {
	bg, canvas, text := themeStyles(c.Theme)
	values := make([]chart.Value, 0, len(c.Categories))
	for i, cat := range c.Categories {
		v := c.Series[0].Values[i]
		if v <= 0 || math.IsNaN(v) {
			continue
		}
		values = append(values, chart.Value{
			Label: label(cat),
			Value: v,
			Style: chart.Style{FillColor: colorAt(c, i), StrokeColor: hex(c.Theme.Colors().Background), FontColor: text.FontColor},
		})
	}
	pie := chart.PieChart{
		Title:      label(c.Title),
		TitleStyle: text,
		Width:      opt.Width,
		Height:     opt.Height,
		Background: bg,
		Canvas:     canvas,
		Values:     values,
	}
	return pie.Render(chart.SVG, w)
}

func drawBar(w io.Writer, c dashboard.Chart, opt Options) error {
	bg, canvas, text := themeStyles(c.Theme)
	perCategory := len(c.Colors) == len(c.Categories) && len(c.Colors) > 1
	bars := make([]chart.Value, len(c.Categories))
	for i, cat := range c.Categories {
		col := colorAt(c, 0)
		if perCategory {
			col = colorAt(c, i)
		}
		bars[i] = chart.Value{
			Label: label(cat),
			Value: c.Series[0].Values[i],
			Style: chart.Style{FillColor: col, StrokeColor: col},
		}
	}
	bc := chart.BarChart{
		Title:      label(c.Title),
		TitleStyle: text,
		Width:      opt.Width,
		Height:     opt.Height,
		Background: bg,
		Canvas:     canvas,
		BarWidth:   barWidth(opt.Width, len(bars)),
		XAxis:      text,
		YAxis: chart.YAxis{
			Name:      label(c.YLabel),
			NameStyle: text,
			Style:     text,
			Range:     &chart.ContinuousRange{Min: 0, Max: maxValue(c) * 1.1},
		},
		Bars: bars,
	}
	return bc.Render(chart.SVG, w)
}

func drawStacked(w io.Writer, c dashboard.Chart, opt Options) error {
	bg, canvas, text := themeStyles(c.Theme)
	bars := make([]chart.StackedBar, len(c.Categories))
	for i, cat := range c.Categories {
		vals := make([]chart.Value, 0, len(c.Series))
		for s, series := range c.Series {
			v := series.Values[i]
			if v <= 0 {
				continue
			}
			col := colorAt(c, s)
			vals = append(vals, chart.Value{Label: label(series.Name), Value: v, Style: chart.Style{FillColor: col, StrokeColor: col}})
		}
		if len(vals) == 0 {
			// Keep the category on the axis with an invisible sliver.
			vals = append(vals, chart.Value{Value: math.SmallestNonzeroFloat32, Style: chart.Style{FillColor: canvas.FillColor, StrokeColor: canvas.FillColor}})
		}
		bars[i] = chart.StackedBar{Name: label(cat), Width: barWidth(opt.Width, len(c.Categories)), Values: vals}
	}
	sbc := chart.StackedBarChart{
		Title:      label(c.Title),
		TitleStyle: text,
		Width:      opt.Width,
		Height:     opt.Height,
		Background: bg,
		Canvas:     canvas,
		XAxis:      text,
		YAxis:      text,
		BarSpacing: 8,
		Bars:       bars,
	}
	return sbc.Render(chart.SVG, w)
}

func barWidth(width, n int) int {
	if n <= 0 {
		return 40
	}
	bw := (width - 120) / n * 2 / 3
	if bw < 6 {
		return 6
	}
	if bw > 60 {
		return 60
	}
	return bw
}

// maxValue returns the tallest bar: the largest cell for single-series charts,
// the largest stacked total otherwise.
func maxValue(c dashboard.Chart) float64 {
	var m float64
	for i := range c.Categories {
		var stack float64
		for _, s := range c.Series {
			if i < len(s.Values) && s.Values[i] > 0 {
				stack += s.Values[i]
			}
		}
		if stack > m {
			m = stack
		}
	}
	return m
}

// Placeholder writes a blank chart frame carrying title and message.
func Placeholder(w io.Writer, title, message string, theme dashboard.Theme, opt Options) error {
	opt = opt.withDefaults()
	tc := theme.Colors()
	_, err := fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
		`<rect width="100%%" height="100%%" fill="#%s"/>`+
		`<text x="%d" y="28" font-family="sans-serif" font-size="15" fill="#%s">%s</text>`+
		`<text x="%d" y="%d" text-anchor="middle" font-family="sans-serif" font-size="13" fill="#%s" opacity="0.7">%s</text>`+
		`</svg>`,
		opt.Width, opt.Height, opt.Width, opt.Height,
		tc.Background,
		16, tc.Text, html.EscapeString(title),
		opt.Width/2, opt.Height/2, tc.Text, html.EscapeString(message),
	)
	return err
}
