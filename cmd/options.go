package cmd

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/fitdash/internal/utils"
)

var optionsJSON bool

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the values offered by each filter",
	RunE: func(cmd *cobra.Command, args []string) error {
		frame, err := loadDataset()
		if err != nil {
			return err
		}
		opts := frame.Options()
		out := cmd.OutOrStdout()
		if optionsJSON {
			b, err := utils.PrettyJSON(opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}
		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"Filter", "Values"})
		table.SetAutoWrapText(false)
		table.Append([]string{"gender", strings.Join(opts.Genders, ", ")})
		table.Append([]string{"age_category", strings.Join(opts.AgeCategories, ", ")})
		table.Append([]string{"month_name", strings.Join(opts.Months, ", ")})
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(optionsCmd)
	optionsCmd.Flags().BoolVar(&optionsJSON, "json", false, "print as JSON")
}
