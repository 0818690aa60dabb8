package testutil

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"franvarocli/internal/config"
	"franvarocli/internal/operations"
)

// CreateSuccessfulStage creates a step that always succeeds
func CreateSuccessfulStage(id, name string) *MockStage {
	return &MockStage{IDValue: id, NameValue: name}
}

// CreateFailingStage creates a step that always fails
func CreateFailingStage(id, name string, err error) *MockStage {
	if err == nil {
		err = errors.New("step failed")
	}
	return &MockStage{
		IDValue:   id,
		NameValue: name,
		ExecuteFunc: func(ctx context.Context, state *operations.OperationState) error {
			return err
		},
	}
}

// CreateContextAwareStage creates a step that requires readKey (when set)
// and stores writeValue under writeKey
func CreateContextAwareStage(id, name, readKey, writeKey string, writeValue interface{}) *MockStage {
	return &MockStage{
		IDValue:   id,
		NameValue: name,
		ExecuteFunc: func(ctx context.Context, state *operations.OperationState) error {
			if readKey != "" {
				if _, ok := state.GetContext(readKey); !ok {
					return errors.New("missing context value " + readKey)
				}
			}
			state.SetContext(writeKey, writeValue)
			return nil
		},
	}
}

// ExportHeader is the column header row of a school export
var ExportHeader = []string{"Namn", "Personnr", "Undv. tid", "Lekt.", "N min", "GF min", "F min", "N %", "GF %", "F %"}

// SchoolAExport has its header in row 0 and three students in class 3A at
// 95, 80 and 60 % attendance.
func SchoolAExport() [][]string {
	return [][]string{
		ExportHeader,
		{"Klass: 3A"},
		{"Anna Andersson", "160512-1234", "1200", "40", "1140", "60", "0", "95,0%", "5,0%", "0,0%"},
		{"Bertil Berg", "160811-2345", "1200", "40", "960", "168", "72", "80,0%", "14,0%", "6,0%"},
		{"Cecilia Ceder", "160102-3456", "1200", "40", "720", "240", "240", "60,0%", "20,0%", "20,0%"},
	}
}

// SchoolBExport has four leading report rows and two students in class 5B,
// the second without any numeric measurement.
func SchoolBExport() [][]string {
	return [][]string{
		{"Frånvarorapport"},
		{"Skolenhet: B"},
		{"Period 2025-08-18 - 2025-12-19"},
		ExportHeader,
		{"Klass: 5B"},
		{"David Dahl", "140203-5678", "1000", "35", "885", "90", "25", "88,5%", "9,0%", "2,5%"},
		{"Erik Ek", "140304-6789", "-", "-", "-", "-", "-", "-", "-", "-"},
	}
}

// WriteWorkbook saves rows to the first sheet of a new .xlsx file
func WriteWorkbook(t *testing.T, path string, rows [][]string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

// CreateTestPaths returns the paths of year under a fresh temporary root
// with its directories created
func CreateTestPaths(t *testing.T, year string) *config.Paths {
	t.Helper()

	paths, err := config.NewPaths(t.TempDir(), config.DefaultDataDir, config.DefaultLogsDir, year)
	require.NoError(t, err)
	require.NoError(t, paths.EnsureDirectories())
	return paths
}

// WriteSchoolExports writes the A and B exports into the raw directory
func WriteSchoolExports(t *testing.T, paths *config.Paths) []string {
	t.Helper()

	files := []string{
		filepath.Join(paths.RawDir, "A.xlsx"),
		filepath.Join(paths.RawDir, "B.xlsx"),
	}
	WriteWorkbook(t, files[0], SchoolAExport())
	WriteWorkbook(t, files[1], SchoolBExport())
	return files
}
