package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"franvarocli/internal/app"
	"franvarocli/internal/config"
	"franvarocli/internal/infrastructure"
	"franvarocli/internal/operations"
	"franvarocli/internal/operations/testutil"
)

func setup(t *testing.T) *config.Paths {
	t.Helper()
	root := t.TempDir()
	t.Setenv("FRANVARO_PATHS_ROOT_DIR", root)
	t.Setenv("FRANVARO_LOGGING_OUTPUT", "file")
	t.Cleanup(infrastructure.ResetLoggerForTesting)

	paths, err := config.NewPaths(root, config.DefaultDataDir, config.DefaultLogsDir, config.DefaultSchoolYear)
	require.NoError(t, err)
	require.NoError(t, paths.EnsureDirectories())
	return paths
}

func TestRun(t *testing.T) {
	paths := setup(t)
	testutil.WriteSchoolExports(t, paths)

	var out bytes.Buffer
	require.Equal(t, 0, app.Main("merger", []string{operations.StageIDMerge}, nil, &out), out.String())

	out.Reset()
	require.Equal(t, 0, run(nil, &out), out.String())
	testutil.AssertFileExists(t, paths.CleanedFile)
	assert.Contains(t, out.String(), paths.CleanedFile)
}

func TestRun_WithoutMergedFile(t *testing.T) {
	paths := setup(t)

	var out bytes.Buffer
	assert.Equal(t, 1, run(nil, &out))
	assert.Contains(t, out.String(), "Fel:")
	testutil.AssertFileNotExists(t, paths.CleanedFile)
}
