package analysis

import (
	"math"
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"
)

// Point is one labelled aggregate value.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Grouped is a two-key aggregate. Values[s][c] holds the value for series Series[s]
// at category Categories[c]; absent combinations are 0.
type Grouped struct {
	Categories []string    `json:"categories"`
	Series     []string    `json:"series"`
	Values     [][]float64 `json:"values"`
}

// Empty reports whether the aggregate has nothing to draw.
func (g Grouped) Empty() bool { return len(g.Categories) == 0 || len(g.Series) == 0 }

// Total sums every cell.
func (g Grouped) Total() float64 {
	var t float64
	for _, row := range g.Values {
		for _, v := range row {
			t += v
		}
	}
	return t
}

// Agg names an aggregation over a grouping key.
type Agg string

const (
	// AggFrequency counts rows per key ordered by count, like a value count.
	AggFrequency Agg = "frequency"
	// AggCount counts rows per key in label order.
	AggCount Agg = "count"
	AggSum   Agg = "sum"
	AggMean  Agg = "mean"
)

// GroupBy aggregates vals per key. vals is ignored for counting aggregations.
func GroupBy(keys []string, vals []float64, agg Agg) []Point {
	switch agg {
	case AggFrequency:
		return ValueCounts(keys)
	case AggSum:
		return SumBy(keys, vals)
	case AggMean:
		return MeanBy(keys, vals)
	default:
		return CountBy(keys)
	}
}

func missing(s string) bool { return s == "" || s == "NaN" }

// absent reports whether v carries no usable observation.
func absent(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }

// LessLabel orders labels numerically when both parse as numbers, else lexically.
func LessLabel(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	switch {
	case errA == nil && errB == nil:
		if fa != fb {
			return fa < fb
		}
		return a < b
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}

func sortLabels(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool { return LessLabel(labels[i], labels[j]) })
}

// ValueCounts counts occurrences of each non-missing value, ordered by count
// descending then label ascending.
func ValueCounts(vals []string) []Point {
	counts := map[string]int{}
	for _, v := range vals {
		if missing(v) {
			continue
		}
		counts[v]++
	}
	out := make([]Point, 0, len(counts))
	for k, n := range counts {
		out = append(out, Point{Label: k, Value: float64(n)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value == out[j].Value {
			return LessLabel(out[i].Label, out[j].Label)
		}
		return out[i].Value > out[j].Value
	})
	return out
}

type acc struct {
	n   int
	sum float64
	obs int
}

func groupBy(keys []string, vals []float64) (map[string]*acc, []string) {
	groups := map[string]*acc{}
	for i, k := range keys {
		if missing(k) {
			continue
		}
		a := groups[k]
		if a == nil {
			a = &acc{}
			groups[k] = a
		}
		a.n++
		if vals == nil || i >= len(vals) || absent(vals[i]) {
			continue
		}
		a.sum += vals[i]
		a.obs++
	}
	order := make([]string, 0, len(groups))
	for k := range groups {
		order = append(order, k)
	}
	sortLabels(order)
	return groups, order
}

// CountBy returns group sizes keyed by label, in label order.
func CountBy(keys []string) []Point {
	groups, order := groupBy(keys, nil)
	out := make([]Point, len(order))
	for i, k := range order {
		out[i] = Point{Label: k, Value: float64(groups[k].n)}
	}
	return out
}

// SumBy sums vals per key, skipping NaN. Groups whose values are all NaN sum to 0.
func SumBy(keys []string, vals []float64) []Point {
	groups, order := groupBy(keys, vals)
	out := make([]Point, len(order))
	for i, k := range order {
		out[i] = Point{Label: k, Value: groups[k].sum}
	}
	return out
}

// MeanBy averages vals per key, skipping NaN. Groups whose values are all NaN
// report 0 so they still render.
func MeanBy(keys []string, vals []float64) []Point {
	groups, order := groupBy(keys, vals)
	out := make([]Point, len(order))
	for i, k := range order {
		a := groups[k]
		v := 0.0
		if a.obs > 0 {
			v = a.sum / float64(a.obs)
		}
		out[i] = Point{Label: k, Value: v}
	}
	return out
}

// CountBy2 counts rows per (category, series) pair.
func CountBy2(categories, series []string) Grouped {
	return GroupBy2(categories, series, nil, AggCount)
}

// SumBy2 sums vals per (category, series) pair, skipping NaN.
func SumBy2(categories, series []string, vals []float64) Grouped {
	return GroupBy2(categories, series, vals, AggSum)
}

// GroupBy2 aggregates vals per (category, series) pair. Categories and series are
// the distinct keys present, in label order.
func GroupBy2(categories, series []string, vals []float64, agg Agg) Grouped {
	catIdx := map[string]int{}
	serIdx := map[string]int{}
	for i := range categories {
		if i >= len(series) || missing(categories[i]) || missing(series[i]) {
			continue
		}
		catIdx[categories[i]] = 0
		serIdx[series[i]] = 0
	}
	g := Grouped{Categories: sortedKeys(catIdx), Series: sortedKeys(serIdx)}
	for i, c := range g.Categories {
		catIdx[c] = i
	}
	for i, s := range g.Series {
		serIdx[s] = i
	}
	g.Values = make([][]float64, len(g.Series))
	obs := make([][]int, len(g.Series))
	for i := range g.Values {
		g.Values[i] = make([]float64, len(g.Categories))
		obs[i] = make([]int, len(g.Categories))
	}
	for i := range categories {
		if i >= len(series) || missing(categories[i]) || missing(series[i]) {
			continue
		}
		s, c := serIdx[series[i]], catIdx[categories[i]]
		if agg == AggCount || agg == AggFrequency {
			g.Values[s][c]++
			continue
		}
		if i < len(vals) && !absent(vals[i]) {
			g.Values[s][c] += vals[i]
			obs[s][c]++
		}
	}
	if agg == AggMean {
		for s := range g.Values {
			for c := range g.Values[s] {
				if obs[s][c] > 0 {
					g.Values[s][c] /= float64(obs[s][c])
				}
			}
		}
	}
	return g
}

func sortedKeys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sortLabels(out)
	return out
}

func present(vals []float64) stats.Float64Data {
	out := make(stats.Float64Data, 0, len(vals))
	for _, v := range vals {
		if !absent(v) {
			out = append(out, v)
		}
	}
	return out
}

// Mean averages the non-NaN values. ok is false when there is nothing to average.
func Mean(vals []float64) (mean float64, ok bool) {
	m, err := stats.Mean(present(vals))
	if err != nil {
		// stats.ErrEmptyInput: no observations survive the filter.
		return 0, false
	}
	return m, true
}

// Sum adds the non-NaN values; empty input sums to 0.
func Sum(vals []float64) float64 {
	s, err := stats.Sum(present(vals))
	if err != nil {
		return 0
	}
	return s
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	r, err := stats.Round(v, places)
	if err != nil {
		return v
	}
	return r
}

// Distinct counts distinct non-missing values.
func Distinct(vals []string) int {
	seen := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		if missing(v) {
			continue
		}
		seen[v] = struct{}{}
	}
	return len(seen)
}

// IdxMax returns the label with the largest value; the first wins on ties.
func IdxMax(points []Point) (string, bool) {
	if len(points) == 0 {
		return "", false
	}
	best := 0
	for i := 1; i < len(points); i++ {
		if points[i].Value > points[best].Value {
			best = i
		}
	}
	return points[best].Label, true
}
