package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/fitdash/internal/utils"
)

// Global configuration structure.
type Global struct {
	DatasetPath string `mapstructure:"dataset_path" yaml:"dataset_path"`
	XLSXSheet   string `mapstructure:"xlsx_sheet" yaml:"xlsx_sheet"`
	HTTPAddress string `mapstructure:"http_address" yaml:"http_address"`
	LogLevel    string `mapstructure:"log_level" yaml:"log_level"`

	// Chart rendering
	ChartWidth    int `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight   int `mapstructure:"chart_height" yaml:"chart_height"`
	HistogramBins int `mapstructure:"histogram_bins" yaml:"histogram_bins"`
	PreviewRows   int `mapstructure:"preview_rows" yaml:"preview_rows"`

	// HTTP server tunables
	ReadTimeoutSec     int `mapstructure:"read_timeout_sec" yaml:"read_timeout_sec"`
	WriteTimeoutSec    int `mapstructure:"write_timeout_sec" yaml:"write_timeout_sec"`
	IdleTimeoutSec     int `mapstructure:"idle_timeout_sec" yaml:"idle_timeout_sec"`
	ShutdownTimeoutSec int `mapstructure:"shutdown_timeout_sec" yaml:"shutdown_timeout_sec"`

	ReportsDir string `mapstructure:"reports_dir" yaml:"reports_dir"`
}

// ReadTimeout returns the server read timeout as a duration.
func (c *Global) ReadTimeout() time.Duration { return time.Duration(c.ReadTimeoutSec) * time.Second }

// WriteTimeout returns the server write timeout as a duration.
func (c *Global) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSec) * time.Second
}

// IdleTimeout returns the server idle timeout as a duration.
func (c *Global) IdleTimeout() time.Duration { return time.Duration(c.IdleTimeoutSec) * time.Second }

// ShutdownTimeout bounds graceful shutdown.
func (c *Global) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSec) * time.Second
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".fitdash"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.fitdash/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("FITDASH")
	v.AutomaticEnv()

	v.SetDefault("dataset_path", "sampled_data.csv")
	v.SetDefault("xlsx_sheet", "")
	v.SetDefault("http_address", ":8501")
	v.SetDefault("log_level", "info")
	v.SetDefault("chart_width", 480)
	v.SetDefault("chart_height", 360)
	v.SetDefault("histogram_bins", 0)
	v.SetDefault("preview_rows", 5)
	v.SetDefault("read_timeout_sec", 5)
	v.SetDefault("write_timeout_sec", 15)
	v.SetDefault("idle_timeout_sec", 60)
	v.SetDefault("shutdown_timeout_sec", 15)
	v.SetDefault("reports_dir", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.ReportsDir == "" {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		c.ReportsDir = filepath.Join(dir, "reports")
	}
	return &c, nil
}
