package commands

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmartel/loglyzer/pkg/stats"
)

const sampleLog = `2024-01-15 10:30:45 [ERROR] API timeout
2024-01-15 10:31:45 [INFO] OK
not a log line
2024-01-15 10:32:45 [ERROR] API timeout
2024-01-15 11:00:00 [WARNING] High CPU
`

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.log")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execAnalyze(t *testing.T, args ...string) error {
	t.Helper()
	ExitCode = 0
	t.Cleanup(func() { ExitCode = 0 })

	cmd := NewAnalyzeCommand()
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd.Execute()
}

func TestAnalyze_CSVReport(t *testing.T) {
	logPath := writeLog(t, sampleLog)
	outPath := filepath.Join(t.TempDir(), "report.csv")

	err := execAnalyze(t, logPath, "--format", "csv", "--output", outPath)
	require.NoError(t, err)
	assert.Equal(t, ExitOK, ExitCode)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)

	assert.Contains(t, records, []string{"total", "", "4"})
	assert.Contains(t, records, []string{"skipped", "", "1"})
	assert.Contains(t, records, []string{"level", "ERROR", "2"})
	assert.Contains(t, records, []string{"top_error", "API timeout", "2"})
	assert.Contains(t, records, []string{"error_by_hour", "10:00", "2"})
	assert.Contains(t, records, []string{"error_rate_by_hour", "10:00", "50.0000"})
}

func TestAnalyze_JSONReportWithFilters(t *testing.T) {
	logPath := writeLog(t, sampleLog)
	outPath := filepath.Join(t.TempDir(), "report.json")

	err := execAnalyze(t, logPath,
		"--format", "json",
		"--output", outPath,
		"--errors-only",
		"--since", "2024-01-15 10:00:00",
		"--until", "2024-01-15 23:00:00",
	)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var report stats.Stats
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, 2, report.TotalEntries)
	assert.Equal(t, map[string]int{"ERROR": 2}, report.ByLevel)
	assert.Equal(t, "2024-01-15 10:00:00", report.Since)
	assert.Equal(t, "2024-01-15 23:00:00", report.Until)
	assert.Equal(t, 1, report.SkippedLines)
}

func TestAnalyze_NoMatchesIsSuccess(t *testing.T) {
	logPath := writeLog(t, sampleLog)
	outPath := filepath.Join(t.TempDir(), "report.txt")

	err := execAnalyze(t, logPath, "--search", "no such text anywhere", "--output", outPath)
	require.NoError(t, err)
	assert.Equal(t, ExitOK, ExitCode)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, noMatchMessage+"\n", string(data))
}

func TestAnalyze_MissingFileExitsNotFound(t *testing.T) {
	err := execAnalyze(t, filepath.Join(t.TempDir(), "missing.log"))
	require.Error(t, err)
	assert.Equal(t, ExitNotFound, ExitCode)
}

func TestAnalyze_TopZeroRejected(t *testing.T) {
	logPath := writeLog(t, sampleLog)

	err := execAnalyze(t, logPath, "--top", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--top must be at least 1")
}

func TestAnalyze_InvalidSinceRejected(t *testing.T) {
	logPath := writeLog(t, sampleLog)

	err := execAnalyze(t, logPath, "--since", "yesterday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--since")
}

func TestAnalyze_InvalidFormatRejected(t *testing.T) {
	logPath := writeLog(t, sampleLog)

	err := execAnalyze(t, logPath, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestAnalyze_ParallelMatchesSequential(t *testing.T) {
	logPath := writeLog(t, sampleLog)
	seqPath := filepath.Join(t.TempDir(), "seq.json")
	parPath := filepath.Join(t.TempDir(), "par.json")

	require.NoError(t, execAnalyze(t, logPath, "--format", "json", "--output", seqPath))
	require.NoError(t, execAnalyze(t, logPath, "--format", "json", "--output", parPath, "--parallel"))

	seq, err := os.ReadFile(seqPath)
	require.NoError(t, err)
	par, err := os.ReadFile(parPath)
	require.NoError(t, err)
	assert.JSONEq(t, string(seq), string(par))
}

func TestAnalyze_ConfigDefaultsApplied(t *testing.T) {
	logPath := writeLog(t, sampleLog)
	outPath := filepath.Join(t.TempDir(), "report.out")
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("format: json\ntop: 1\n"), 0o644))

	err := execAnalyze(t, logPath, "--config", cfgPath, "--output", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	// Config switched the default format to JSON.
	var report stats.Stats
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Len(t, report.TopErrors, 1)
}

func TestAnalyze_ExplicitFlagWinsOverConfig(t *testing.T) {
	logPath := writeLog(t, sampleLog)
	outPath := filepath.Join(t.TempDir(), "report.out")
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("format: json\n"), 0o644))

	err := execAnalyze(t, logPath, "--config", cfgPath, "--format", "text", "--output", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Log Analysis Results")
}
