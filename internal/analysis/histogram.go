package analysis

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// maxDiscreteLevels bounds when an integer-valued column gets one bin per value.
const maxDiscreteLevels = 20

// Bin is one histogram bucket covering [Lo, Hi).
type Bin struct {
	Label string  `json:"label"`
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count float64 `json:"count"`
}

// Histogram buckets the non-NaN values. Integer-valued data with few distinct
// levels gets one bin per level; otherwise bins equal-width bins are used, with
// bins <= 0 choosing the count by Sturges' rule. Empty input yields nil.
func Histogram(vals []float64, bins int) []Bin {
	x := sortedPresent(vals)
	if len(x) == 0 {
		return nil
	}
	dividers, labels := binEdges(x, bins)
	counts := stat.Histogram(nil, dividers, x, nil)
	out := make([]Bin, len(counts))
	for i, c := range counts {
		out[i] = Bin{Label: labels[i], Lo: dividers[i], Hi: dividers[i+1], Count: c}
	}
	return out
}

// GroupedHistogram buckets vals per group using bin edges shared across groups.
// The result's categories are bin labels and its series are the group keys.
func GroupedHistogram(vals []float64, groups []string, bins int) Grouped {
	all := sortedPresent(vals)
	if len(all) == 0 {
		return Grouped{}
	}
	dividers, labels := binEdges(all, bins)

	byGroup := map[string][]float64{}
	for i, v := range vals {
		if i >= len(groups) || missing(groups[i]) || absent(v) {
			continue
		}
		byGroup[groups[i]] = append(byGroup[groups[i]], v)
	}
	keys := make([]string, 0, len(byGroup))
	for k := range byGroup {
		keys = append(keys, k)
	}
	sortLabels(keys)
	if len(keys) == 0 {
		return Grouped{}
	}

	g := Grouped{Categories: labels, Series: keys, Values: make([][]float64, len(keys))}
	for i, k := range keys {
		x := byGroup[k]
		sort.Float64s(x)
		g.Values[i] = stat.Histogram(nil, dividers, x, nil)
	}
	return g
}

func sortedPresent(vals []float64) []float64 {
	x := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !absent(v) {
			x = append(x, v)
		}
	}
	sort.Float64s(x)
	return x
}

// binEdges returns strictly increasing dividers covering sorted x (the last edge
// lies just above the maximum) and a label per bin.
func binEdges(x []float64, bins int) ([]float64, []string) {
	lo, hi := x[0], x[len(x)-1]
	if levels, ok := discreteLevels(x); ok {
		dividers := append(levels, math.Nextafter(levels[len(levels)-1], math.Inf(1)))
		labels := make([]string, len(levels))
		for i, v := range levels {
			labels[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		return dividers, labels
	}
	if lo == hi {
		return []float64{lo, math.Nextafter(hi, math.Inf(1))}, []string{strconv.FormatFloat(lo, 'g', 4, 64)}
	}
	if bins <= 0 {
		bins = int(math.Ceil(math.Log2(float64(len(x))))) + 1
	}
	dividers := floats.Span(make([]float64, bins+1), lo, hi)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))
	labels := make([]string, bins)
	for i := 0; i < bins; i++ {
		labels[i] = fmt.Sprintf("%.4g-%.4g", dividers[i], dividers[i+1])
	}
	return dividers, labels
}

func discreteLevels(x []float64) ([]float64, bool) {
	var levels []float64
	for i, v := range x {
		if v != math.Trunc(v) {
			return nil, false
		}
		if i == 0 || v != x[i-1] {
			levels = append(levels, v)
			if len(levels) > maxDiscreteLevels {
				return nil, false
			}
		}
	}
	return levels, true
}
