package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"franvarocli/internal/operations"
)

// AssertStepStatus verifies a step has the expected status
func AssertStepStatus(t *testing.T, p *operations.OperationState, stageID string, expected operations.StepStatus) {
	t.Helper()
	step := p.GetStage(stageID)
	require.NotNil(t, step, "step %s not found", stageID)
	assert.Equal(t, expected, step.Status, "step %s", stageID)
}

// AssertStageCompleted verifies a step completed successfully
func AssertStageCompleted(t *testing.T, p *operations.OperationState, stageID string) {
	t.Helper()
	AssertStepStatus(t, p, stageID, operations.StepStatusCompleted)
	assert.NoError(t, p.GetStage(stageID).Error)
}

// AssertStageFailed verifies a step failed
func AssertStageFailed(t *testing.T, p *operations.OperationState, stageID string) {
	t.Helper()
	AssertStepStatus(t, p, stageID, operations.StepStatusFailed)
	assert.Error(t, p.GetStage(stageID).Error)
}

// AssertStageSkipped verifies a step was skipped
func AssertStageSkipped(t *testing.T, p *operations.OperationState, stageID string) {
	t.Helper()
	AssertStepStatus(t, p, stageID, operations.StepStatusSkipped)
}

// AssertFileExists verifies a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	assert.NoError(t, err, "file %s should exist", path)
}

// AssertFileNotExists verifies a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "file %s should not exist", path)
}
