package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/fitdash/internal/charts"
	"github.com/KaramelBytes/fitdash/internal/dataset"
	"github.com/KaramelBytes/fitdash/internal/report"
	"github.com/KaramelBytes/fitdash/internal/utils"
)

var (
	expSel   dataset.Selection
	expOut   string
	expName  string
	expForce bool
	expQuiet bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a static report bundle (HTML, SVG charts, XLSX) for a filter selection",
	Long: `Export renders every page and tab for the selection and writes index.html,
one SVG per chart, data.xlsx and manifest.json. Without --out the bundle goes to a
timestamped directory under reports_dir.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		frame, err := loadDataset()
		if err != nil {
			return err
		}
		dir := expOut
		if dir == "" {
			dir = filepath.Join(cfg.ReportsDir, time.Now().Format("20060102-150405"))
		}
		if dir, err = utils.ExpandHome(dir); err != nil {
			return err
		}
		log := newLogger()
		m, err := report.Export(frame, expSel, report.Options{
			Dir:           dir,
			Force:         expForce,
			Name:          expName,
			Dataset:       cfg.DatasetPath,
			Charts:        charts.Options{Width: cfg.ChartWidth, Height: cfg.ChartHeight},
			HistogramBins: cfg.HistogramBins,
			PreviewRows:   cfg.PreviewRows,
			Logger:        log,
		})
		if err != nil {
			return err
		}
		if !expQuiet {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported report %s to %s (%d files, %d of %d rows)\n",
				m.ID, dir, len(m.Files), m.FilteredRows, m.TotalRows)
			if m.FilteredRows == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "⚠ No rows match the selection; charts are placeholders.")
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addSelectionFlags(exportCmd, &expSel)
	exportCmd.Flags().StringVarP(&expOut, "out", "o", "", "output directory (default: <reports_dir>/<timestamp>)")
	exportCmd.Flags().StringVar(&expName, "name", "", "report name (default: directory name)")
	exportCmd.Flags().BoolVar(&expForce, "force", false, "write into a non-empty directory")
	exportCmd.Flags().BoolVarP(&expQuiet, "quiet", "q", false, "suppress status output")
}
