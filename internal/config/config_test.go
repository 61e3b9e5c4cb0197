package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sampled_data.csv", c.DatasetPath)
	assert.Equal(t, ":8501", c.HTTPAddress)
	assert.Equal(t, 5, c.PreviewRows)
	assert.Equal(t, 15*time.Second, c.ShutdownTimeout())
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), ".fitdash", "reports"), c.ReportsDir)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "fitdash.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dataset_path: from-file.csv\nchart_width: 800\n"), 0o644))
	t.Setenv("FITDASH_DATASET_PATH", "from-env.csv")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.csv", c.DatasetPath)
	assert.Equal(t, 800, c.ChartWidth)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "saved.yaml")

	c, err := Load("")
	require.NoError(t, err)
	c.HistogramBins = 12
	c.LogLevel = "debug"
	require.NoError(t, Save(c, path))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, back.HistogramBins)
	assert.Equal(t, "debug", back.LogLevel)
}
