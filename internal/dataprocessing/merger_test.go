package dataprocessing

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "franvarocli/internal/errors"
	"franvarocli/internal/shared/testutil"
	"franvarocli/pkg/contracts/domain"
)

// fakeSheets serves grids by path and fails for paths it does not know.
func fakeSheets(sheets map[string][][]string) SheetReader {
	return func(path string) ([][]string, error) {
		rows, ok := sheets[path]
		if !ok {
			return nil, errors.New("file is locked")
		}
		return rows, nil
	}
}

func TestNewMerger(t *testing.T) {
	tests := []struct {
		name     string
		config   MergerConfig
		wantSkip int
	}{
		{"zero skip kept", MergerConfig{HeaderSkipRows: 0}, 0},
		{"custom skip", MergerConfig{HeaderSkipRows: 2}, 2},
		{"negative falls back to default", MergerConfig{HeaderSkipRows: -1}, DefaultHeaderSkipRows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMerger(nil, tt.config)
			assert.Equal(t, tt.wantSkip, m.skipRows)
			assert.NotNil(t, m.logger)
			assert.NotNil(t, m.read)
		})
	}
}

func TestSchoolName(t *testing.T) {
	assert.Equal(t, "Busavsjö skola", SchoolName(filepath.Join("raw", "Busavsjö skola.xls")))
	assert.Equal(t, "A", SchoolName("A.xlsx"))
	assert.Equal(t, "noext", SchoolName("noext"))
}

func TestMerger_Merge(t *testing.T) {
	sheets := map[string][][]string{
		"A.xls": {
			{"Namn", "Personnr"},
			{"Klass: 1A"},
			{"Anna", "180101-1111"},
		},
		"B.xls": {
			{"title"}, {"period"}, {"blank"}, {"Namn", "Personnr"},
			{"Klass: 2B"},
			{"Bo", "170101-2222"},
		},
	}
	m := NewMerger(slog.Default(), MergerConfig{HeaderSkipRows: 4, Reader: fakeSheets(sheets)})

	report, err := m.Merge(context.Background(), []string{"A.xls", "B.xls"})
	require.NoError(t, err)

	assert.Equal(t, []string{"skola", "Namn", "Personnr"}, report.Header)
	assert.Equal(t, [][]string{
		{"A", "Klass: 1A"},
		{"A", "Anna", "180101-1111"},
		{"B", "Klass: 2B"},
		{"B", "Bo", "170101-2222"},
	}, report.Rows)
	assert.Equal(t, []string{"A", "B"}, report.Sources)
	assert.Empty(t, report.Skipped)

	grid := report.Grid()
	require.Len(t, grid, 5)
	assert.Equal(t, domain.SchoolColumn, grid[0][0])
}

func TestMerger_SkipsUnreadableFiles(t *testing.T) {
	sheets := map[string][][]string{
		"B.xls": {{"Namn"}, {"Klass: 2B"}, {"Bo", "1"}},
		"C.xls": {{"x"}, {"Klass: 3C"}, {"Cia", "2"}},
		"E.xls": {},
	}
	logger, logs := testutil.NewTestLogger()
	m := NewMerger(logger, MergerConfig{HeaderSkipRows: 1, Reader: fakeSheets(sheets)})

	report, err := m.Merge(context.Background(), []string{"A.xls", "B.xls", "C.xls", "E.xls"})
	require.NoError(t, err)

	// The first readable file supplies the header
	assert.Equal(t, []string{"skola", "Namn"}, report.Header)
	assert.Equal(t, []string{"B", "C"}, report.Sources)
	assert.Equal(t, [][]string{
		{"B", "Klass: 2B"},
		{"B", "Bo", "1"},
		{"C", "Klass: 3C"},
		{"C", "Cia", "2"},
	}, report.Rows)

	require.Len(t, report.Skipped, 2)
	assert.Equal(t, "A.xls", report.Skipped[0].Name)
	assert.Equal(t, "file is locked", report.Skipped[0].Reason)
	assert.Equal(t, "E.xls", report.Skipped[1].Name)

	warnings := logs.Records(slog.LevelWarn)
	require.Len(t, warnings, 2)
	warn := testutil.AssertLogged(t, logs, slog.LevelWarn, "skipping unreadable export")
	assert.Equal(t, "A.xls", warn.Attrs["file"])
}

func TestMerger_SkipRowsBeyondSheet(t *testing.T) {
	sheets := map[string][][]string{
		"A.xls": {{"Namn"}, {"Klass: 1A"}},
		"B.xls": {{"short"}},
	}
	m := NewMerger(nil, MergerConfig{HeaderSkipRows: 4, Reader: fakeSheets(sheets)})

	report, err := m.Merge(context.Background(), []string{"A.xls", "B.xls"})
	require.NoError(t, err)
	assert.Len(t, report.Rows, 1)
	assert.Equal(t, []string{"A", "B"}, report.Sources)
}

func TestMerger_NoData(t *testing.T) {
	m := NewMerger(nil, MergerConfig{HeaderSkipRows: 4, Reader: fakeSheets(nil)})

	tests := []struct {
		name  string
		files []string
	}{
		{"no files", nil},
		{"no readable file", []string{"A.xls", "B.xls"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := m.Merge(context.Background(), tt.files)
			require.Error(t, err)
			assert.Nil(t, report)
			assert.ErrorIs(t, err, apperrors.ErrNoInputFiles)
			assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNoData))
		})
	}
}

func TestMerger_MergeWorkbooks(t *testing.T) {
	_, files := writeSchoolExports(t)

	m := NewMerger(nil, MergerConfig{HeaderSkipRows: DefaultHeaderSkipRows})
	report, err := m.Merge(context.Background(), files)
	require.NoError(t, err)

	assert.Equal(t, append([]string{"skola"}, exportHeader...), report.Header)
	// Two class markers and five student rows
	require.Len(t, report.Rows, 7)
	assert.Equal(t, []string{"A", "Klass: 3A"}, report.Rows[0])
	assert.Equal(t, "A", report.Rows[3][0])
	assert.Equal(t, []string{"B", "Klass: 5B"}, report.Rows[4])
	assert.Equal(t, "Erik Ek", report.Rows[6][1])
}

func TestMerger_XLSWithBlankRows(t *testing.T) {
	data, err := os.ReadFile(filepath.FromSlash(blankRowsXLS))
	require.NoError(t, err)

	dir := t.TempDir()
	gap := filepath.Join(dir, "Gap.xls")
	require.NoError(t, os.WriteFile(gap, data, 0644))
	other := filepath.Join(dir, "Other.xlsx")
	writeWorkbook(t, other, [][]string{{"h"}, {"h"}, {"h"}, {"h"}, {"x1", "y1"}})

	m := NewMerger(nil, MergerConfig{HeaderSkipRows: DefaultHeaderSkipRows})
	report, err := m.Merge(context.Background(), []string{gap, other})
	require.NoError(t, err)

	assert.Equal(t, []string{"Gap", "Other"}, report.Sources)
	assert.Empty(t, report.Skipped)
	assert.Equal(t, []string{"skola", "Code", "Name", "Description"}, report.Header)
	// eleven rows from Gap.xls, blank ones included, then one from Other.xlsx
	require.Len(t, report.Rows, 12)
	assert.Equal(t, []string{"Gap"}, report.Rows[4])
	assert.Equal(t, []string{"Gap", "code8", "name8", "description8"}, report.Rows[7])
	assert.Equal(t, []string{"Other", "x1", "y1"}, report.Rows[11])
}
