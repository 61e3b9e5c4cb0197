package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/fitdash/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set fitdash configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "dataset_path: %s\n", cfg.DatasetPath)
		if cfg.XLSXSheet != "" {
			fmt.Fprintf(out, "xlsx_sheet: %s\n", cfg.XLSXSheet)
		}
		fmt.Fprintf(out, "http_address: %s\n", cfg.HTTPAddress)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "chart_width: %d\n", cfg.ChartWidth)
		fmt.Fprintf(out, "chart_height: %d\n", cfg.ChartHeight)
		fmt.Fprintf(out, "histogram_bins: %d\n", cfg.HistogramBins)
		fmt.Fprintf(out, "preview_rows: %d\n", cfg.PreviewRows)
		fmt.Fprintf(out, "read_timeout_sec: %d\n", cfg.ReadTimeoutSec)
		fmt.Fprintf(out, "write_timeout_sec: %d\n", cfg.WriteTimeoutSec)
		fmt.Fprintf(out, "idle_timeout_sec: %d\n", cfg.IdleTimeoutSec)
		fmt.Fprintf(out, "shutdown_timeout_sec: %d\n", cfg.ShutdownTimeoutSec)
		fmt.Fprintf(out, "reports_dir: %s\n", cfg.ReportsDir)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		ints := map[string]*int{
			"chart_width":          &cfg.ChartWidth,
			"chart_height":         &cfg.ChartHeight,
			"histogram_bins":       &cfg.HistogramBins,
			"preview_rows":         &cfg.PreviewRows,
			"read_timeout_sec":     &cfg.ReadTimeoutSec,
			"write_timeout_sec":    &cfg.WriteTimeoutSec,
			"idle_timeout_sec":     &cfg.IdleTimeoutSec,
			"shutdown_timeout_sec": &cfg.ShutdownTimeoutSec,
		}
		switch key {
		case "dataset_path":
			cfg.DatasetPath = val
		case "xlsx_sheet":
			cfg.XLSXSheet = val
		case "http_address":
			cfg.HTTPAddress = val
		case "log_level":
			lv := strings.ToLower(strings.TrimSpace(val))
			switch lv {
			case "error", "warn", "info", "debug":
			default:
				return fmt.Errorf("invalid log_level: %s (use error|warn|info|debug)", val)
			}
			cfg.LogLevel = lv
		case "reports_dir":
			cfg.ReportsDir = val
		default:
			p, ok := ints[key]
			if !ok {
				return fmt.Errorf("unknown key: %s", key)
			}
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for %s: %v", key, val)
			}
			*p = i
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
