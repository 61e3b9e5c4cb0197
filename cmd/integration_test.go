package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/fitdash/internal/dashboard"
	"github.com/KaramelBytes/fitdash/internal/dataset"
	"github.com/KaramelBytes/fitdash/internal/dataset/datasettest"
	"github.com/KaramelBytes/fitdash/internal/report"
)

// resetFlags restores every flag of c and its children to its default so
// values do not leak between invocations in one process.
func resetFlags(c *cobra.Command) {
	reset := func(fl *pflag.Flag) {
		if sv, ok := fl.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = fl.Value.Set(fl.DefValue)
		}
		fl.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execCmd executes the root command with args and returns its output.
func execCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	cfg = nil
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execCmd(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v\n%s", args, err, out)
	}
	return out
}

// setup isolates HOME and writes the fixture dataset into it.
func setup(t *testing.T) (home, data string) {
	t.Helper()
	home = t.TempDir()
	t.Setenv("HOME", home)
	data = datasettest.WriteCSV(t, home, "fitlife.csv", datasettest.Records())
	return home, data
}

func TestCLI_OptionsJSON(t *testing.T) {
	_, data := setup(t)
	out := runCmd(t, "options", "--data", data, "--json")
	var opts dataset.FilterOptions
	require.NoError(t, json.Unmarshal([]byte(out), &opts))
	assert.Equal(t, []string{dataset.All, "Male", "Female"}, opts.Genders)
	assert.Equal(t, datasettest.Months, opts.Months)

	table := runCmd(t, "options", "--data", data)
	assert.Contains(t, table, "age_category")
	assert.Contains(t, table, "Young, Adult, Senior")
}

func TestCLI_RenderFormats(t *testing.T) {
	_, data := setup(t)

	out := runCmd(t, "render", "--data", data, "--page", "business", "--all", "--format", "json", "--age-category", "Adult", "--month", "February")
	var vm dashboard.ViewModel
	require.NoError(t, json.Unmarshal([]byte(out), &vm))
	assert.Equal(t, dashboard.PageBusiness, vm.Page)
	assert.Equal(t, "Adult", vm.Selection.AgeCategory)
	assert.Len(t, vm.Sections, 3)

	md := runCmd(t, "render", "--data", data, "--format", "markdown", "--tab", "heart-stress")
	assert.Contains(t, md, "## Heart Rate & Stress Analysis")
	assert.NotContains(t, md, "Filtered Data Preview")

	table := runCmd(t, "render", "--data", data)
	assert.Contains(t, table, "Average Heart Rate")
	assert.Contains(t, table, "109.5")
}

func TestCLI_RenderErrors(t *testing.T) {
	_, data := setup(t)

	_, err := execCmd(t, "render", "--data", data, "--page", "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, dashboard.ErrUnknownPage))

	_, err = execCmd(t, "render", "--data", data, "--format", "yaml")
	require.Error(t, err)

	_, err = execCmd(t, "render", "--data", filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	var le *dataset.LoadError
	assert.True(t, errors.As(err, &le))
	assert.True(t, errors.Is(err, dataset.ErrNotFound))
}

func TestCLI_SummaryWritesFile(t *testing.T) {
	home, data := setup(t)
	outPath := filepath.Join(home, "summary.md")

	out := runCmd(t, "summary", "--data", data, "--gender", "Female", "--group-by", "activity_type", "-o", outPath)
	assert.Contains(t, out, "✓ Wrote summary to")

	b, err := os.ReadFile(outPath)
	require.NoError(t, err)
	body := string(b)
	assert.Contains(t, body, "[DATASET SUMMARY]")
	assert.Contains(t, body, "gender=Female")
	assert.Contains(t, body, "[GROUP-BY SUMMARY]")

	// Without filters the whole table is profiled.
	all := runCmd(t, "summary", "--data", data)
	assert.Contains(t, all, "Rows: 36")
}

func TestCLI_ExportAndList(t *testing.T) {
	home, data := setup(t)
	dir := filepath.Join(home, "bundle")

	out := runCmd(t, "export", "--data", data, "--out", dir, "--name", "weekly", "--gender", "Male")
	assert.Contains(t, out, "✓ Exported report")

	m, err := report.LoadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, "weekly", m.Name)
	assert.Equal(t, "Male", m.Selection.Gender)

	_, err = execCmd(t, "export", "--data", data, "--out", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, report.ErrNotEmpty))
	runCmd(t, "export", "--data", data, "--out", dir, "--force", "-q")

	listed := runCmd(t, "list", "--dir", home)
	assert.Contains(t, listed, "weekly")
	assert.Contains(t, runCmd(t, "list", "--dir", filepath.Join(home, "none")), "(no reports)")
}

func TestCLI_ExportDefaultsToReportsDir(t *testing.T) {
	home, data := setup(t)
	runCmd(t, "export", "--data", data, "-q")

	reports := filepath.Join(home, ".fitdash", "reports")
	bundles, err := report.List(reports)
	require.NoError(t, err)
	require.Len(t, bundles, 1)
	assert.Contains(t, runCmd(t, "list"), bundles[0].Name)
}

func TestCLI_ExportExpandsHomeInReportsDir(t *testing.T) {
	home, data := setup(t)
	runCmd(t, "config", "set", "reports_dir", "~/custom-reports")
	runCmd(t, "export", "--data", data, "-q")

	bundles, err := report.List(filepath.Join(home, "custom-reports"))
	require.NoError(t, err)
	require.Len(t, bundles, 1)
	assert.Contains(t, runCmd(t, "list"), bundles[0].Name)

	_, err = os.Stat("~")
	assert.True(t, os.IsNotExist(err), "no literal ~ directory")
}

func TestCLI_ConfigSetShow(t *testing.T) {
	home, _ := setup(t)

	runCmd(t, "config", "set", "chart_width", "640")
	runCmd(t, "config", "set", "dataset_path", "elsewhere.csv")
	_, err := execCmd(t, "config", "set", "chart_width", "wide")
	require.Error(t, err)
	_, err = execCmd(t, "config", "set", "nope", "1")
	require.Error(t, err)

	_, err = os.Stat(filepath.Join(home, ".fitdash", "config.yaml"))
	require.NoError(t, err)

	out := runCmd(t, "config", "show")
	assert.Contains(t, out, "chart_width: 640")
	assert.Contains(t, out, "dataset_path: elsewhere.csv")
	assert.True(t, strings.Contains(out, "http_address: :8501"))
}

func TestCLI_ServeFailsOnMissingDataset(t *testing.T) {
	home, _ := setup(t)
	_, err := execCmd(t, "serve", "--data", filepath.Join(home, "absent.csv"), "--addr", "127.0.0.1:0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, dataset.ErrNotFound))
}
