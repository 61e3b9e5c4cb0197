package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/fitdash/internal/analysis"
	"github.com/KaramelBytes/fitdash/internal/dataset"
	"github.com/KaramelBytes/fitdash/internal/utils"
)

var (
	sumSel        dataset.Selection
	sumOutputPath string
	sumSampleRows int
	sumGroupBy    []string
	sumCorr       bool
	sumOutliers   bool
	sumOutlierThr float64
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Profile the dataset and produce a concise Markdown summary",
	Long: `Summary profiles every column of the dataset. Pass any of --gender,
--age-category or --month to profile only the matching rows.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		frame, err := loadDataset()
		if err != nil {
			return err
		}
		name := filepath.Base(cfg.DatasetPath)
		fl := cmd.Flags()
		if fl.Changed("gender") || fl.Changed("age-category") || fl.Changed("month") {
			sel := sumSel.Normalize(frame.Options())
			if frame, err = frame.Filter(sel); err != nil {
				return err
			}
			name = fmt.Sprintf("%s (%s)", name, sel)
		}

		opt := analysis.DefaultOptions()
		if sumSampleRows > 0 {
			opt.SampleRows = sumSampleRows
		}
		opt.GroupBy = sumGroupBy
		opt.Correlations = sumCorr
		if fl.Changed("outliers") {
			opt.Outliers = sumOutliers
		}
		if sumOutlierThr > 0 {
			opt.OutlierThreshold = sumOutlierThr
		}
		md := analysis.Profile(name, frame, opt).Markdown()

		if sumOutputPath != "" {
			if err := utils.SafeWriteFile(sumOutputPath, []byte(md)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote summary to %s\n", sumOutputPath)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	addSelectionFlags(summaryCmd, &sumSel)
	summaryCmd.Flags().StringVarP(&sumOutputPath, "output", "o", "", "optional path to write the summary (Markdown)")
	summaryCmd.Flags().IntVar(&sumSampleRows, "sample-rows", 5, "number of sample rows to include")
	summaryCmd.Flags().StringSliceVar(&sumGroupBy, "group-by", nil, "comma-separated column names to group by (repeatable)")
	summaryCmd.Flags().BoolVar(&sumCorr, "correlations", false, "compute Pearson correlations among numeric columns")
	summaryCmd.Flags().BoolVar(&sumOutliers, "outliers", true, "compute robust outlier counts (MAD)")
	summaryCmd.Flags().Float64Var(&sumOutlierThr, "outlier-threshold", 3.5, "robust |z| threshold for outliers (MAD-based)")
}
