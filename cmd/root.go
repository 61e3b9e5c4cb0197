package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/fitdash/internal/config"
	"github.com/KaramelBytes/fitdash/internal/dataset"
	"github.com/KaramelBytes/fitdash/internal/logging"
)

var (
	// Global flags
	cfgFile      string
	flagData     string
	flagLogLevel string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "fitdash",
	Short: "FitLife health and fitness dashboard",
	Long: `fitdash loads a fitness tracking table once and serves an interactive dashboard
of health and business insights, filtered by gender, age category and month.
The same views can be printed to the terminal or exported as static report bundles.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.fitdash/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "", "dataset path: .csv, .tsv or .xlsx (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: error|warn|info|debug (overrides config)")
}

func loadConfig() {
	// .env is optional; existing environment variables win.
	_ = godotenv.Load()

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("data") && strings.TrimSpace(flagData) != "" {
		cfg.DatasetPath = flagData
	}
	if f.Changed("log-level") && flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
}

func requireConfig() error {
	if cfg == nil {
		return fmt.Errorf("no configuration loaded")
	}
	return nil
}

func newLogger() *logging.Logger {
	if cfg == nil {
		return logging.Default("info")
	}
	return logging.Default(cfg.LogLevel)
}

// loadDataset reads the configured dataset once.
func loadDataset() (*dataset.Frame, error) {
	if err := requireConfig(); err != nil {
		return nil, err
	}
	return dataset.Load(cfg.DatasetPath, dataset.LoadOptions{Sheet: cfg.XLSXSheet})
}

// addSelectionFlags binds the three filter controls to sel.
func addSelectionFlags(cmd *cobra.Command, sel *dataset.Selection) {
	cmd.Flags().StringVar(&sel.Gender, "gender", "", "gender filter (default All)")
	cmd.Flags().StringVar(&sel.AgeCategory, "age-category", "", "age category filter (default: first category)")
	cmd.Flags().StringVar(&sel.Month, "month", "", "month filter (default: first month)")
}
