package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"franvarocli/internal/config"
	apperrors "franvarocli/internal/errors"
	"franvarocli/internal/infrastructure"
	"franvarocli/internal/operations"
	"franvarocli/internal/operations/testutil"
	"franvarocli/pkg/contracts"
)

// setupRoot points the configuration at a fresh root directory and returns
// the default paths below it
func setupRoot(t *testing.T) *config.Paths {
	t.Helper()
	root := t.TempDir()
	t.Setenv("FRANVARO_PATHS_ROOT_DIR", root)
	t.Setenv("FRANVARO_LOGGING_OUTPUT", "file")
	t.Cleanup(infrastructure.ResetLoggerForTesting)

	paths, err := config.NewPaths(root, config.DefaultDataDir, config.DefaultLogsDir, config.DefaultSchoolYear)
	require.NoError(t, err)
	return paths
}

func writeExports(t *testing.T, paths *config.Paths) {
	t.Helper()
	require.NoError(t, paths.EnsureDirectories())
	testutil.WriteSchoolExports(t, paths)
}

func TestMain_Pipeline(t *testing.T) {
	paths := setupRoot(t)
	writeExports(t, paths)
	t.Setenv("FRANVARO_TELEMETRY_METRICS_FILE", "metrics/run.prom")

	var out bytes.Buffer
	code := Main("pipeline", operations.AllStepIDs, nil, &out)
	require.Equal(t, 0, code, out.String())

	testutil.AssertFileExists(t, paths.MergedFile)
	testutil.AssertFileExists(t, paths.CleanedFile)
	testutil.AssertFileExists(t, paths.ThresholdFile)
	assert.Contains(t, out.String(), "Antal elever med >11% total frånvaro: 3")

	metrics, err := os.ReadFile(filepath.Join(paths.RootDir, "metrics", "run.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "franvaro_files_merged_total")
	assert.Contains(t, string(metrics), "franvaro_rows_kept_total")
	assert.Contains(t, string(metrics), "franvaro_memory_allocated_bytes")

	logs, err := os.ReadFile(filepath.Join(paths.RootDir, "logs", "franvaro.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logs), "Run complete")
	assert.Contains(t, string(logs), `"trace_id"`)
}

func TestMain_StepCommandsInSequence(t *testing.T) {
	paths := setupRoot(t)
	writeExports(t, paths)

	for _, id := range operations.AllStepIDs {
		var out bytes.Buffer
		require.Equal(t, 0, Main(id, []string{id}, nil, &out), out.String())
	}
	testutil.AssertFileExists(t, paths.ThresholdFile)
}

func TestMain_FlagOverrides(t *testing.T) {
	paths := setupRoot(t)

	t.Run("year", func(t *testing.T) {
		other, err := paths.WithSchoolYear("2024-2025")
		require.NoError(t, err)
		writeExports(t, other)

		var out bytes.Buffer
		code := Main("merger", []string{operations.StageIDMerge}, []string{"-year", "2024-2025"}, &out)
		require.Equal(t, 0, code, out.String())
		testutil.AssertFileExists(t, other.MergedFile)
		testutil.AssertFileNotExists(t, paths.MergedFile)
	})

	t.Run("in and out", func(t *testing.T) {
		in := filepath.Join(t.TempDir(), "exports")
		out := filepath.Join(t.TempDir(), "reports")
		require.NoError(t, os.MkdirAll(in, 0755))
		testutil.WriteWorkbook(t, filepath.Join(in, "A.xlsx"), testutil.SchoolAExport())

		var stdout bytes.Buffer
		code := Main("merger", []string{operations.StageIDMerge}, []string{"-in", in, "-out", out}, &stdout)
		require.Equal(t, 0, code, stdout.String())
		testutil.AssertFileExists(t, filepath.Join(out, config.MergedFileName))
	})
}

func TestMain_Version(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 0, Main("pipeline", operations.AllStepIDs, []string{"-version"}, &out))
	assert.Contains(t, out.String(), "Frånvarorapporter v"+contracts.Version)
}

func TestMain_Failures(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		args    []string
		wantOut string
	}{
		{
			name:    "no input files",
			wantOut: "Fel:",
		},
		{
			name:    "invalid year flag",
			args:    []string{"-year", "2025/2026"},
			wantOut: "Kunde inte starta",
		},
		{
			name:    "unknown flag",
			args:    []string{"-full"},
			wantOut: "flag provided but not defined",
		},
		{
			name:    "invalid configuration",
			env:     map[string]string{"FRANVARO_PIPELINE_ABSENCE_THRESHOLD": "500"},
			wantOut: "Fel i konfigurationen",
		},
		{
			name:    "missing mixed classes file",
			env:     map[string]string{"FRANVARO_PIPELINE_MIXED_CLASSES_FILE": "missing.yaml"},
			wantOut: "failed to load mixed classes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupRoot(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			var out bytes.Buffer
			assert.Equal(t, 1, Main("pipeline", operations.AllStepIDs, tt.args, &out))
			assert.Contains(t, out.String(), tt.wantOut)
		})
	}
}

func TestApplication_TraceFile(t *testing.T) {
	paths := setupRoot(t)
	writeExports(t, paths)

	cfg := config.Default()
	cfg.Paths.RootDir = paths.RootDir
	cfg.Logging.Output = "file"
	cfg.Telemetry.TraceExporter = "stdout"
	cfg.Telemetry.TraceFile = "trace.json"

	a, err := NewApplication(cfg, Options{Name: "merger", Steps: []string{operations.StageIDMerge}})
	require.NoError(t, err)

	state, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, operations.OperationStatusCompleted, state.Status)
	assert.Len(t, state.ID, 36)
	require.NoError(t, a.Stop(context.Background()))

	trace, err := os.ReadFile(filepath.Join(paths.RootDir, "trace.json"))
	require.NoError(t, err)
	assert.Contains(t, string(trace), "operation.step.merge")
}

func TestApplication_UnknownStep(t *testing.T) {
	paths := setupRoot(t)

	cfg := config.Default()
	cfg.Paths.RootDir = paths.RootDir

	_, err := NewApplication(cfg, Options{Name: "scraper", Steps: []string{"scrape"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown step")
}

func TestApplication_RunFailureIsNotRecoverable(t *testing.T) {
	paths := setupRoot(t)

	cfg := config.Default()
	cfg.Paths.RootDir = paths.RootDir

	a, err := NewApplication(cfg, Options{Name: "cleaner", Steps: []string{operations.StageIDClean}})
	require.NoError(t, err)

	_, err = a.Run(context.Background())
	require.Error(t, err)
	assert.False(t, apperrors.IsRecoverable(err))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNoData))
	require.NoError(t, a.Stop(context.Background()))
}
