package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/fitdash/internal/dashboard"
	"github.com/KaramelBytes/fitdash/internal/dataset"
	"github.com/KaramelBytes/fitdash/internal/utils"
)

var (
	renderSel     dataset.Selection
	renderPage    string
	renderTab     string
	renderAllTabs bool
	renderFormat  string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print one dashboard page for a filter selection",
	Long: `Render computes the same view the dashboard shows and prints it as tables,
JSON or Markdown. Without --tab the page's first tab is rendered.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(strings.TrimSpace(renderFormat))
		switch format {
		case "table", "json", "markdown", "md":
		default:
			return fmt.Errorf("unsupported --format: %s (use table|json|markdown)", renderFormat)
		}
		frame, err := loadDataset()
		if err != nil {
			return err
		}
		vm, err := dashboard.Render(frame, renderSel, dashboard.RenderOptions{
			Page:          renderPage,
			Tab:           renderTab,
			AllTabs:       renderAllTabs,
			HistogramBins: cfg.HistogramBins,
			PreviewRows:   cfg.PreviewRows,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch format {
		case "json":
			b, err := utils.PrettyJSON(vm)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
		case "markdown", "md":
			fmt.Fprint(out, vm.Markdown())
		default:
			writeViewTables(out, vm)
		}
		return nil
	},
}

func writeViewTables(w io.Writer, vm *dashboard.ViewModel) {
	heading := color.New(color.FgCyan, color.Bold)
	sub := color.New(color.FgYellow)
	heading.Fprintf(w, "%s: %s\n", vm.Title, vm.PageTitle)
	fmt.Fprintf(w, "Gender: %s  Age category: %s  Month: %s  (%d of %d rows)\n",
		vm.Selection.Gender, vm.Selection.AgeCategory, vm.Selection.Month, vm.FilteredRows, vm.TotalRows)

	for _, sec := range vm.Sections {
		fmt.Fprintln(w)
		heading.Fprintln(w, sec.Heading)
		if len(sec.Metrics) > 0 {
			table := tablewriter.NewWriter(w)
			table.SetHeader([]string{"Metric", "Value"})
			for _, m := range sec.Metrics {
				table.Append([]string{m.Label, m.Value})
			}
			table.Render()
		}
		for _, c := range sec.Charts {
			sub.Fprintf(w, "\n%s\n", c.Title)
			if c.Empty {
				fmt.Fprintln(w, "(no data for the current filters)")
				continue
			}
			header := []string{c.XLabel}
			if header[0] == "" {
				header[0] = "Category"
			}
			for _, s := range c.Series {
				header = append(header, s.Name)
			}
			table := tablewriter.NewWriter(w)
			table.SetHeader(header)
			table.SetAutoFormatHeaders(false)
			for i, cat := range c.Categories {
				row := []string{cat}
				for _, s := range c.Series {
					row = append(row, dashboard.FormatValue(s.Values[i]))
				}
				table.Append(row)
			}
			table.Render()
		}
		if sec.Preview != nil && len(sec.Preview.Rows) > 0 {
			sub.Fprintln(w, "\nFiltered Data Preview")
			table := tablewriter.NewWriter(w)
			table.SetHeader(sec.Preview.Columns)
			table.SetAutoFormatHeaders(false)
			table.AppendBulk(sec.Preview.Rows)
			table.Render()
		}
	}
}

func init() {
	rootCmd.AddCommand(renderCmd)
	addSelectionFlags(renderCmd, &renderSel)
	renderCmd.Flags().StringVar(&renderPage, "page", dashboard.PageHealth, "page: health|business")
	renderCmd.Flags().StringVar(&renderTab, "tab", "", "tab id (default: first tab of the page)")
	renderCmd.Flags().BoolVar(&renderAllTabs, "all", false, "render every tab of the page")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "table", "output format: table|json|markdown")
}
