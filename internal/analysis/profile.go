// Package analysis computes the aggregates behind the dashboard charts and a
// markdown-friendly profile of the loaded dataset.
package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/fitdash/internal/dataset"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Options controls profile behavior.
type Options struct {
	// SampleRows determines how many example rows to include in the report.
	SampleRows int
	// GroupBy computes per-group summaries for the given column names.
	GroupBy []string
	// Correlations computes Pearson correlations among numeric columns.
	Correlations bool
	// Outlier detection via robust Z-score (MAD). Counts |z|>OutlierThreshold.
	Outliers         bool
	OutlierThreshold float64
}

// DefaultOptions returns reasonable defaults for dataset profiling.
func DefaultOptions() Options {
	return Options{
		SampleRows:       5,
		Outliers:         true,
		OutlierThreshold: 3.5,
	}
}

// Report is a markdown-friendly profile of a frame.
type Report struct {
	Name     string
	Rows     int
	Header   []string
	Cols     []ColumnSummary
	Samples  [][]string
	Warnings []string
	Groups   []GroupResult
	Corr     *CorrMatrix
}

// ColumnSummary captures the kind and statistics per column.
type ColumnSummary struct {
	Name    string
	Kind    string // numeric|categorical
	NonNull int
	Missing int
	Unique  int
	// Numeric stats
	Min  float64
	Max  float64
	Mean float64
	Std  float64
	// Outliers (robust Z via MAD)
	OutliersCount    int
	OutliersMaxAbsZ  float64
	OutlierThreshold float64
	// Categorical top values
	TopValues []Point
}

// GroupResult captures aggregated metrics per group key.
type GroupResult struct {
	Key     string
	Size    int
	Metrics map[string]NumSummary // by column name
}

type NumSummary struct {
	Count          int
	Min, Max, Mean float64
}

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric columns.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// Profile summarizes every column of f.
func Profile(name string, f *dataset.Frame, opt Options) *Report {
	rep := &Report{Name: name, Rows: f.Len(), Header: f.Columns()}
	sampleRows := opt.SampleRows
	if sampleRows <= 0 {
		sampleRows = 5
	}
	rep.Samples = f.Rows(sampleRows)

	var numCols []string
	for _, col := range rep.Header {
		if dataset.IsNumeric(col) {
			rep.Cols = append(rep.Cols, numericSummary(col, f.Floats(col), opt))
			numCols = append(numCols, col)
			continue
		}
		rep.Cols = append(rep.Cols, categoricalSummary(col, f.Strings(col)))
	}

	if len(opt.GroupBy) > 0 {
		groups, warn := groupSummaries(f, opt.GroupBy, numCols)
		rep.Groups = groups
		rep.Warnings = append(rep.Warnings, warn...)
	}
	if opt.Correlations && len(numCols) >= 2 {
		rep.Corr = correlations(f, numCols)
	}
	if rep.Rows == 0 {
		rep.Warnings = append(rep.Warnings, "no rows match the current filters")
	}
	return rep
}

func numericSummary(col string, vals []float64, opt Options) ColumnSummary {
	x := sortedPresent(vals)
	s := ColumnSummary{Name: col, Kind: "numeric", NonNull: len(x), Missing: len(vals) - len(x)}
	if len(x) == 0 {
		return s
	}
	s.Min = floats.Min(x)
	s.Max = floats.Max(x)
	if len(x) > 1 {
		s.Mean, s.Std = stat.MeanStdDev(x, nil)
	} else {
		s.Mean = x[0]
	}
	if opt.Outliers && len(x) >= 8 {
		thr := opt.OutlierThreshold
		if thr <= 0 {
			thr = 3.5
		}
		median, mad := medianMAD(x)
		if mad > 0 {
			for _, v := range x {
				az := math.Abs(0.6745 * (v - median) / mad)
				if az > thr {
					s.OutliersCount++
				}
				if az > s.OutliersMaxAbsZ {
					s.OutliersMaxAbsZ = az
				}
			}
		}
		s.OutlierThreshold = thr
	}
	return s
}

func categoricalSummary(col string, vals []string) ColumnSummary {
	s := ColumnSummary{Name: col, Kind: "categorical"}
	for _, v := range vals {
		if missing(v) {
			s.Missing++
		} else {
			s.NonNull++
		}
	}
	tops := ValueCounts(vals)
	s.Unique = len(tops)
	if len(tops) > 8 {
		tops = tops[:8]
	}
	s.TopValues = tops
	return s
}

func groupSummaries(f *dataset.Frame, by []string, numCols []string) ([]GroupResult, []string) {
	var (
		keyCols  [][]string
		keyNames []string
		warnings []string
	)
	for _, name := range by {
		name = strings.TrimSpace(name)
		if !f.Has(name) {
			warnings = append(warnings, fmt.Sprintf("group-by column %q not found", name))
			continue
		}
		keyCols = append(keyCols, f.Strings(name))
		keyNames = append(keyNames, name)
	}
	if len(keyCols) == 0 || f.Len() == 0 {
		return nil, warnings
	}
	keys := make([]string, f.Len())
	for r := range keys {
		parts := make([]string, len(keyCols))
		for i, kc := range keyCols {
			parts[i] = fmt.Sprintf("%s=%s", keyNames[i], safeVal(kc[r]))
		}
		keys[r] = strings.Join(parts, " | ")
	}

	sizes := CountBy(keys)
	out := make([]GroupResult, len(sizes))
	for i, p := range sizes {
		out[i] = GroupResult{Key: p.Label, Size: int(p.Value), Metrics: map[string]NumSummary{}}
	}
	index := make(map[string]int, len(out))
	for i, g := range out {
		index[g.Key] = i
	}
	for _, col := range numCols {
		vals := f.Floats(col)
		for r, v := range vals {
			if absent(v) {
				continue
			}
			g := &out[index[keys[r]]]
			m, ok := g.Metrics[col]
			if !ok {
				m = NumSummary{Min: v, Max: v}
			}
			m.Count++
			m.Mean += (v - m.Mean) / float64(m.Count)
			m.Min = math.Min(m.Min, v)
			m.Max = math.Max(m.Max, v)
			g.Metrics[col] = m
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Size == out[j].Size {
			return out[i].Key < out[j].Key
		}
		return out[i].Size > out[j].Size
	})
	if len(out) > 20 {
		out = out[:20]
	}
	return out, warnings
}

func correlations(f *dataset.Frame, numCols []string) *CorrMatrix {
	cols := make([][]float64, len(numCols))
	for i, c := range numCols {
		cols[i] = f.Floats(c)
	}
	n := len(numCols)
	mat := make([][]float64, n)
	for i := range mat {
		mat[i] = make([]float64, n)
		mat[i][i] = 1
	}
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			r := pairwiseCorrelation(cols[a], cols[b])
			mat[a][b], mat[b][a] = r, r
		}
	}
	return &CorrMatrix{Columns: numCols, Values: mat}
}

// pairwiseCorrelation uses rows where both values are present; degenerate input gives 0.
func pairwiseCorrelation(xs, ys []float64) float64 {
	var x, y []float64
	for i := range xs {
		if i >= len(ys) || absent(xs[i]) || absent(ys[i]) {
			continue
		}
		x = append(x, xs[i])
		y = append(y, ys[i])
	}
	if len(x) < 2 {
		return 0
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return math.Max(-1, math.Min(1, r))
}

// medianMAD computes median and MAD (median absolute deviation) of sorted values.
func medianMAD(sorted []float64) (median, mad float64) {
	if len(sorted) == 0 {
		return 0, 0
	}
	median = stat.Quantile(0.5, stat.LinInterp, sorted, nil)
	dev := make([]float64, len(sorted))
	for i, v := range sorted {
		dev[i] = math.Abs(v - median)
	}
	sort.Float64s(dev)
	mad = stat.Quantile(0.5, stat.LinInterp, dev, nil)
	return
}

// Markdown renders a compact report suitable for the terminal or standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("Source: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(r.Cols)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Cols {
		total := c.NonNull + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%)", safeName(c.Name), c.Kind, c.NonNull, missPct))
		switch c.Kind {
		case "numeric":
			if c.NonNull > 0 {
				b.WriteString(fmt.Sprintf(": min %.4g, max %.4g, mean %.4g, std %.4g", c.Min, c.Max, c.Mean, c.Std))
			}
			if c.OutliersCount > 0 {
				b.WriteString(fmt.Sprintf("; outliers: %d above |z|>%.1f (max |z| %.2f)", c.OutliersCount, c.OutlierThreshold, c.OutliersMaxAbsZ))
			}
		case "categorical":
			if len(c.TopValues) > 0 {
				b.WriteString(": top ")
				for i, kv := range c.TopValues {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Label), int(kv.Value)))
				}
				if c.Unique > len(c.TopValues) {
					b.WriteString(fmt.Sprintf("; unique=%d", c.Unique))
				}
			}
		}
		b.WriteString("\n")
	}
	if len(r.Groups) > 0 {
		b.WriteString("\n[GROUP-BY SUMMARY]\n")
		for _, g := range r.Groups {
			b.WriteString(fmt.Sprintf("- %s (n=%d)\n", g.Key, g.Size))
			keys := make([]string, 0, len(g.Metrics))
			for k := range g.Metrics {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			if len(keys) > 6 {
				keys = keys[:6]
			}
			for _, k := range keys {
				m := g.Metrics[k]
				b.WriteString(fmt.Sprintf("  • %s: mean %.4g (min %.4g, max %.4g)\n", k, m.Mean, m.Min, m.Max))
			}
		}
	}
	if r.Corr != nil && len(r.Corr.Columns) >= 2 {
		b.WriteString("\n[CORRELATIONS]\n")
		for _, p := range r.Corr.TopPairs(10) {
			b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", p.A, p.B, p.R))
		}
	}
	if len(r.Samples) > 0 {
		b.WriteString("\n[HEAD]\n")
		b.WriteString("| " + strings.Join(r.Header, " | ") + " |\n")
		b.WriteString("|" + strings.Repeat(" --- |", len(r.Header)) + "\n")
		for _, row := range r.Samples {
			cells := make([]string, len(r.Header))
			for i := range cells {
				if i < len(row) {
					cells[i] = safeVal(row[i])
				}
			}
			b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- " + w + "\n")
		}
	}
	return b.String()
}

// PairCorr is a simple correlation pair summary.
type PairCorr struct {
	A, B string
	R    float64
}

// TopPairs lists the strongest off-diagonal pairs by |r|.
func (m *CorrMatrix) TopPairs(limit int) []PairCorr {
	var pairs []PairCorr
	n := len(m.Columns)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, PairCorr{A: m.Columns[i], B: m.Columns[j], R: m.Values[i][j]})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		ai, aj := math.Abs(pairs[i].R), math.Abs(pairs[j].R)
		if ai == aj {
			return pairs[i].A+pairs[i].B < pairs[j].A+pairs[j].B
		}
		return ai > aj
	})
	if limit > 0 && len(pairs) > limit {
		pairs = pairs[:limit]
	}
	return pairs
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
