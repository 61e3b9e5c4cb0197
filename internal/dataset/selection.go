package dataset

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// All is the gender option that disables gender filtering.
const All = "All"

// Selection is the user's current filter choice.
type Selection struct {
	Gender      string `json:"gender"`
	AgeCategory string `json:"age_category"`
	Month       string `json:"month_name"`
}

func (s Selection) String() string {
	return fmt.Sprintf("gender=%s age_category=%s month_name=%s", s.Gender, s.AgeCategory, s.Month)
}

// FilterOptions lists the values offered by each filter control.
type FilterOptions struct {
	Genders       []string `json:"genders"`
	AgeCategories []string `json:"age_categories"`
	Months        []string `json:"months"`
}

// Options derives the filter choices from the frame. Genders start with All; months
// are in calendar order when every value is a month name, else first-appearance order.
func (f *Frame) Options() FilterOptions {
	opts := FilterOptions{
		Genders:       append([]string{All}, distinct(f.Strings(ColGender))...),
		AgeCategories: distinct(f.Strings(ColAgeCategory)),
		Months:        distinct(f.Strings(ColMonth)),
	}
	sortMonths(opts.Months)
	return opts
}

// Normalize fills unset fields with defaults: All for gender, and the first
// available option for age category and month. Values not in opts are kept so the
// filter yields an empty result rather than silently matching something else.
func (s Selection) Normalize(opts FilterOptions) Selection {
	s.Gender = strings.TrimSpace(s.Gender)
	s.AgeCategory = strings.TrimSpace(s.AgeCategory)
	s.Month = strings.TrimSpace(s.Month)
	if s.Gender == "" || strings.EqualFold(s.Gender, All) {
		s.Gender = All
	}
	if s.AgeCategory == "" && len(opts.AgeCategories) > 0 {
		s.AgeCategory = opts.AgeCategories[0]
	}
	if s.Month == "" && len(opts.Months) > 0 {
		s.Month = opts.Months[0]
	}
	return s
}

// Filter returns the rows matching every constrained field of sel. Gender All and
// empty fields do not constrain, so Filter on a raw Selection is a partial filter;
// call Normalize first to apply the dashboard predicate, which always pins
// age category and month.
func (f *Frame) Filter(sel Selection) (*Frame, error) {
	if f == nil {
		return nil, fmt.Errorf("filter: nil frame")
	}
	df := f.df
	apply := func(col, val string) {
		if val == "" || df.Err != nil {
			return
		}
		df = df.Filter(dataframe.F{Colname: col, Comparator: series.Eq, Comparando: val})
	}
	if sel.Gender != All {
		apply(ColGender, sel.Gender)
	}
	apply(ColAgeCategory, sel.AgeCategory)
	apply(ColMonth, sel.Month)
	if df.Err != nil {
		return nil, fmt.Errorf("filter %s: %w", sel, df.Err)
	}
	return &Frame{df: df}, nil
}

func distinct(vals []string) []string {
	seen := make(map[string]bool, 16)
	var out []string
	for _, v := range vals {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func monthIndex(name string) (time.Month, bool) {
	for _, layout := range []string{"January", "Jan"} {
		if t, err := time.Parse(layout, strings.TrimSpace(name)); err == nil {
			return t.Month(), true
		}
	}
	return 0, false
}

func sortMonths(months []string) {
	idx := make(map[string]time.Month, len(months))
	for _, m := range months {
		mi, ok := monthIndex(m)
		if !ok {
			return
		}
		idx[m] = mi
	}
	sort.SliceStable(months, func(i, j int) bool { return idx[months[i]] < idx[months[j]] })
}
