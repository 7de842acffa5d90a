package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/campusgen/internal/activity"
	"github.com/roach88/campusgen/internal/export"
	"github.com/roach88/campusgen/internal/testutil"
)

var runTime = time.Date(2026, 10, 17, 9, 30, 5, 0, time.UTC)

const testStem = "campus_activities_20261017_093005"

// newTestCommand builds a root command with a frozen clock, a fixed run ID
// and an empty environment.
func newTestCommand(t *testing.T, args ...string) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	return newTestCommandWithEnv(t, map[string]string{}, args...)
}

func newTestCommandWithEnv(t *testing.T, environ map[string]string, args ...string) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	clock := testutil.NewDeterministicClock(runTime)
	cmd := newRootCommand(&GenerateOptions{
		Clock:    clock.Now,
		NewRunID: func() string { return "run-test" },
		Environ:  environ,
	})

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	return cmd, out, errOut
}

type runResponse struct {
	Status string    `json:"status"`
	RunID  string    `json:"run_id"`
	Error  *CLIError `json:"error"`
	Data   struct {
		RunID       string            `json:"run_id"`
		Seed        uint64            `json:"seed"`
		Real        bool              `json:"real"`
		Export      export.Result     `json:"export"`
		Fingerprint string            `json:"fingerprint"`
		Summary     map[string]any    `json:"summary"`
		Preview     []activity.Record `json:"preview"`
	} `json:"data"`
}

func decodeRun(t *testing.T, data []byte) runResponse {
	t.Helper()
	var resp runResponse
	require.NoError(t, json.Unmarshal(data, &resp), "output: %s", data)
	return resp
}

func TestGenerate_Demonstration(t *testing.T) {
	dir := t.TempDir()
	cmd, out, _ := newTestCommand(t, "--out", dir)

	require.NoError(t, cmd.Execute())

	for _, ext := range []string{".csv", ".xlsx", ".json"} {
		assert.FileExists(t, filepath.Join(dir, testStem+ext))
	}
	assert.NoFileExists(t, filepath.Join(dir, testStem+".db"))

	text := out.String()
	assert.True(t, strings.HasPrefix(text, rule+"\nCampus Activity Generator v2.0\n"))
	assert.Contains(t, text, "Using synthetic data for the demonstration...")
	assert.Contains(t, text, "CSV file saved: "+filepath.Join(dir, testStem+".csv"))
	assert.Contains(t, text, "Excel file saved: ")
	assert.Contains(t, text, "JSON file saved: ")
	assert.Contains(t, text, "  Activities:         25\n")
	assert.Contains(t, text, "Data files saved in: "+dir+"/\n")
	assert.Contains(t, text, "Preview (first 5):\n")
	assert.Contains(t, text, "Activities per type:\n")
	assert.Contains(t, text, "Heat distribution:\n")

	// Banner, saves, summary, preview, types and heat appear in that order.
	order := []string{"Campus Activity Generator", "CSV file saved", "Summary:", "Done.", "Preview (first 5)", "Activities per type", "Heat distribution"}
	last := -1
	for _, s := range order {
		i := strings.Index(text, s)
		require.Greater(t, i, last, "%q out of order", s)
		last = i
	}
}

func TestGenerate_JSONOutput(t *testing.T) {
	dir := t.TempDir()
	cmd, out, _ := newTestCommand(t, "--out", dir, "--output", "json", "--count", "10", "--preview", "3")

	require.NoError(t, cmd.Execute())

	resp := decodeRun(t, out.Bytes())
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "run-test", resp.RunID)
	assert.Equal(t, "run-test", resp.Data.RunID)
	assert.Equal(t, uint64(42), resp.Data.Seed)
	assert.Equal(t, testStem, resp.Data.Export.Stem)
	assert.Len(t, resp.Data.Export.Files, 3)
	assert.Len(t, resp.Data.Fingerprint, 64)
	assert.Equal(t, float64(10), resp.Data.Summary["total"])
	require.Len(t, resp.Data.Preview, 3)
	assert.Equal(t, 1, resp.Data.Preview[0].ID)

	// No banner or confirmation lines leak into the JSON stream.
	assert.NotContains(t, out.String(), "file saved")
}

func TestGenerate_SameSeedSameData(t *testing.T) {
	read := func(dir string) []byte {
		data, err := os.ReadFile(filepath.Join(dir, testStem+".json"))
		require.NoError(t, err)
		return data
	}

	first, second := t.TempDir(), t.TempDir()
	cmd, _, _ := newTestCommand(t, "--out", first, "--formats", "json", "--seed", "7")
	require.NoError(t, cmd.Execute())
	cmd, _, _ = newTestCommand(t, "--out", second, "--formats", "json", "--seed", "7")
	require.NoError(t, cmd.Execute())
	assert.Equal(t, read(first), read(second))

	third := t.TempDir()
	cmd, _, _ = newTestCommand(t, "--out", third, "--formats", "json", "--seed", "8")
	require.NoError(t, cmd.Execute())
	assert.NotEqual(t, read(first), read(third))
}

func TestGenerate_RealFallsBack(t *testing.T) {
	dir := t.TempDir()
	cmd, out, errOut := newTestCommand(t, "--out", dir, "--real")

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Real data collection is not implemented yet.")
	assert.Contains(t, out.String(), "Falling back to synthetic data.")
	assert.Contains(t, errOut.String(), "real data collection is not implemented")
	assert.FileExists(t, filepath.Join(dir, testStem+".csv"))
}

func TestGenerate_ZeroCount(t *testing.T) {
	dir := t.TempDir()
	cmd, out, _ := newTestCommand(t, "--out", dir, "--count", "0")

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "(no data: date range and heat skipped)")

	data, err := os.ReadFile(filepath.Join(dir, testStem+".json"))
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestGenerate_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative count", []string{"--count", "-1"}},
		{"unknown format", []string{"--formats", "parquet"}},
		{"negative preview", []string{"--preview", "-3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			cmd, out, _ := newTestCommand(t, append([]string{"--out", dir, "--output", "json"}, tt.args...)...)

			err := cmd.Execute()
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))

			resp := decodeRun(t, out.Bytes())
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, ErrCodeInvalidConfig, resp.Error.Code)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestGenerate_ConfigLayering(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "campusgen.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("count: 4\nseed: 9\nformats: [json]\nout_dir: "+dir+"\n"), 0o644))

	t.Run("file", func(t *testing.T) {
		cmd, out, _ := newTestCommand(t, "--config", cfgPath, "--output", "json")
		require.NoError(t, cmd.Execute())

		resp := decodeRun(t, out.Bytes())
		assert.Equal(t, float64(4), resp.Data.Summary["total"])
		assert.Equal(t, uint64(9), resp.Data.Seed)
		require.Len(t, resp.Data.Export.Files, 1)
		assert.Equal(t, export.FormatJSON, resp.Data.Export.Files[0].Format)
	})

	t.Run("env beats file", func(t *testing.T) {
		cmd, out, _ := newTestCommandWithEnv(t, map[string]string{"CAMPUSGEN_COUNT": "6"},
			"--config", cfgPath, "--output", "json")
		require.NoError(t, cmd.Execute())

		resp := decodeRun(t, out.Bytes())
		assert.Equal(t, float64(6), resp.Data.Summary["total"])
		assert.Equal(t, uint64(9), resp.Data.Seed)
	})

	t.Run("flag beats env", func(t *testing.T) {
		cmd, out, _ := newTestCommandWithEnv(t, map[string]string{"CAMPUSGEN_COUNT": "6"},
			"--config", cfgPath, "--output", "json", "--count", "2")
		require.NoError(t, cmd.Execute())

		resp := decodeRun(t, out.Bytes())
		assert.Equal(t, float64(2), resp.Data.Summary["total"])
	})
}

func TestGenerate_BadConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "campusgen.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("records: 4\n"), 0o644))

	cmd, _, _ := newTestCommand(t, "--config", cfgPath)
	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestGenerate_WriteFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	cmd, _, _ := newTestCommand(t, "--out", filepath.Join(blocker, "data"))
	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var we *export.WriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "create directory", we.Op)
}

func TestGenerate_MetricsFile(t *testing.T) {
	dir := t.TempDir()
	metricsPath := filepath.Join(t.TempDir(), "campusgen.prom")
	cmd, _, _ := newTestCommand(t, "--out", dir, "--formats", "csv,sqlite", "--metrics-file", metricsPath)

	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "campusgen_records_generated_total 25")
	assert.Contains(t, text, `campusgen_files_written_total{format="csv"} 1`)
	assert.Contains(t, text, `campusgen_files_written_total{format="sqlite"} 1`)
}

func TestGenerate_VerboseLogsToStderr(t *testing.T) {
	dir := t.TempDir()
	cmd, out, errOut := newTestCommand(t, "--out", dir, "-v")

	require.NoError(t, cmd.Execute())
	assert.Contains(t, errOut.String(), "export file written")
	assert.Contains(t, errOut.String(), "run_id=run-test")
	assert.NotContains(t, out.String(), "level=")
}
