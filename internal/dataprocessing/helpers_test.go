package dataprocessing

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves rows to the first sheet of a new .xlsx file.
func writeWorkbook(t *testing.T, path string, rows [][]string) {
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

var exportHeader = []string{"Namn", "Personnr", "Undv. tid", "Lekt.", "N min", "GF min", "F min", "N %", "GF %", "F %"}

// schoolAExport has its header in row 0 and three students in class 3A.
func schoolAExport() [][]string {
	return [][]string{
		exportHeader,
		{"Klass: 3A"},
		{"Anna Andersson", "160512-1234", "1200", "40", "1140", "60", "0", "95,0%", "5,0%", "0,0%"},
		{"Bertil Berg", "160811-2345", "1200", "40", "960", "168", "72", "80,0%", "14,0%", "6,0%"},
		{"Cecilia Ceder", "160102-3456", "1200", "40", "720", "240", "240", "60,0%", "20,0%", "20,0%"},
	}
}

// schoolBExport has four leading report rows and two students in class 5B,
// the second without any numeric measurement.
func schoolBExport() [][]string {
	return [][]string{
		{"Frånvarorapport"},
		{"Skolenhet: B"},
		{"Period 2025-08-18 - 2025-12-19"},
		exportHeader,
		{"Klass: 5B"},
		{"David Dahl", "140203-5678", "1000", "35", "885", "90", "25", "88,5%", "9,0%", "2,5%"},
		{"Erik Ek", "140304-6789", "-", "-", "-", "-", "-", "-", "-", "-"},
	}
}

func writeSchoolExports(t *testing.T) (dir string, files []string) {
	t.Helper()
	dir = t.TempDir()
	files = []string{filepath.Join(dir, "A.xlsx"), filepath.Join(dir, "B.xlsx")}
	writeWorkbook(t, files[0], schoolAExport())
	writeWorkbook(t, files[1], schoolBExport())
	return dir, files
}
