package dashboard

import (
	"fmt"
	"strconv"
	"strings"
)

// Markdown renders the view as text: metrics as a list and each chart as a table
// of its categories against its series.
func (vm *ViewModel) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s: %s\n\n", vm.Title, vm.PageTitle)
	fmt.Fprintf(&b, "Gender: %s | Age category: %s | Month: %s | Rows: %d of %d\n\n",
		vm.Selection.Gender, vm.Selection.AgeCategory, vm.Selection.Month, vm.FilteredRows, vm.TotalRows)

	for _, sec := range vm.Sections {
		fmt.Fprintf(&b, "## %s\n\n", sec.Heading)
		for _, m := range sec.Metrics {
			fmt.Fprintf(&b, "- %s: %s\n", m.Label, m.Value)
		}
		if len(sec.Metrics) > 0 {
			b.WriteString("\n")
		}
		for _, c := range sec.Charts {
			fmt.Fprintf(&b, "### %s\n\n", c.Title)
			if c.Empty {
				b.WriteString("_No data for the current filters._\n\n")
				continue
			}
			b.WriteString("| " + cell(c.XLabel, "category"))
			for _, s := range c.Series {
				b.WriteString(" | " + cell(s.Name, ""))
			}
			b.WriteString(" |\n|---")
			for range c.Series {
				b.WriteString("|---:")
			}
			b.WriteString("|\n")
			for i, cat := range c.Categories {
				b.WriteString("| " + cell(cat, ""))
				for _, s := range c.Series {
					b.WriteString(" | " + FormatValue(s.Values[i]))
				}
				b.WriteString(" |\n")
			}
			b.WriteString("\n")
		}
		if sec.Preview != nil && len(sec.Preview.Rows) > 0 {
			b.WriteString("### Filtered Data Preview\n\n")
			b.WriteString("| " + strings.Join(sec.Preview.Columns, " | ") + " |\n|")
			b.WriteString(strings.Repeat("---|", len(sec.Preview.Columns)) + "\n")
			for _, row := range sec.Preview.Rows {
				cells := make([]string, len(row))
				for i, v := range row {
					cells[i] = cell(v, "")
				}
				b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FormatValue prints whole numbers without a fraction and others to two decimals.
func FormatValue(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func cell(s, fallback string) string {
	if s == "" {
		s = fallback
	}
	return strings.ReplaceAll(s, "|", "/")
}
