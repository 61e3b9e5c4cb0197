package cmd

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/fitdash/internal/report"
	"github.com/KaramelBytes/fitdash/internal/utils"
)

var listDir string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List exported report bundles",
	RunE: func(cmd *cobra.Command, args []string) error {
		root := listDir
		if root == "" {
			if err := requireConfig(); err != nil {
				return err
			}
			root = cfg.ReportsDir
		}
		root, err := utils.ExpandHome(root)
		if err != nil {
			return err
		}
		bundles, err := report.List(root)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(bundles) == 0 {
			fmt.Fprintln(out, "(no reports)")
			return nil
		}
		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"Name", "Created", "Selection", "Rows", "Dir"})
		table.SetAutoWrapText(false)
		for _, m := range bundles {
			table.Append([]string{
				m.Name,
				m.CreatedAt.Format("2006-01-02 15:04"),
				fmt.Sprintf("%s / %s / %s", m.Selection.Gender, m.Selection.AgeCategory, m.Selection.Month),
				strconv.Itoa(m.FilteredRows) + "/" + strconv.Itoa(m.TotalRows),
				m.RootDir(),
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listDir, "dir", "", "reports directory (default: reports_dir)")
}
