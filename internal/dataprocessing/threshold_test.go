package dataprocessing

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"franvarocli/pkg/contracts/domain"
)

func TestCountOverThreshold(t *testing.T) {
	rows := []domain.AttendanceRow{
		student("A", "Åk 3", pct(95), nil),   // 5
		student("A", "Åk 3", pct(89), nil),   // 11, not above
		student("A", "Åk 3", pct(88.9), nil), // 11.1
		student("B", "Åk 1", pct(60), nil),   // 40
		student("B", "Åk 1", nil, pct(30)),   // missing attendance
		student("B", "Åk 2", pct(100), nil),
	}

	report := CountOverThreshold(rows, DefaultAbsenceThreshold)
	assert.Equal(t, DefaultAbsenceThreshold, report.Threshold)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, []domain.GradeCount{
		{Grade: "Åk 1", Count: 1},
		{Grade: "Åk 2", Count: 0},
		{Grade: "Åk 3", Count: 1},
	}, report.PerGrade)
}

func TestCountOverThresholdCustom(t *testing.T) {
	rows := []domain.AttendanceRow{
		student("A", "Åk 3", pct(95), nil),
		student("A", "Åk 3", pct(80), nil),
	}

	assert.Equal(t, 2, CountOverThreshold(rows, 0).Total)
	assert.Equal(t, 1, CountOverThreshold(rows, 5).Total)
	assert.Equal(t, 0, CountOverThreshold(rows, 20).Total)
	assert.Empty(t, CountOverThreshold(nil, 11).PerGrade)
}

func writeCleanedSheet(t *testing.T, path, sheet string, rows [][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestReadCleanedSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rensad.xlsx")
	header := make([]interface{}, 0, len(domain.CleanedColumns))
	for _, c := range domain.CleanedColumns {
		header = append(header, c)
	}
	writeCleanedSheet(t, path, domain.MunicipalityDataSheet, [][]interface{}{
		header,
		{"A", "3A", "Anna", "160512-1234", "1200", "40", "1140", "60", "0", "95,0%", "5,0%", "0,0%", "Åk 3", 95.0, 0.0},
		{"B", "5B", "David", "140203-5678", "1000", "35", "885", "90", "25", "", "9,0%", "2,5%", "Åk 5", "", 2.5},
	})

	rows, err := ReadCleanedSheet(path, domain.MunicipalityDataSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "A", rows[0].School)
	assert.Equal(t, "3A", rows[0].ClassName)
	assert.Equal(t, "160512-1234", rows[0].StudentID)
	assert.Equal(t, "Åk 3", rows[0].Grade)
	assert.Equal(t, "95,0%", rows[0].Measurements[domain.MeasurementPresentPercent])
	require.NotNil(t, rows[0].AttendancePercent)
	assert.InDelta(t, 95.0, *rows[0].AttendancePercent, 1e-9)

	assert.Nil(t, rows[1].AttendancePercent)
	require.NotNil(t, rows[1].UnauthorizedPercent)
	assert.InDelta(t, 2.5, *rows[1].UnauthorizedPercent, 1e-9)
}

func TestReadCleanedSheetErrors(t *testing.T) {
	dir := t.TempDir()

	noGrade := filepath.Join(dir, "nograde.xlsx")
	writeCleanedSheet(t, noGrade, domain.MunicipalityDataSheet, [][]interface{}{
		{"skola", "närvaro_pct"},
		{"A", 90.0},
	})

	empty := filepath.Join(dir, "empty.xlsx")
	writeCleanedSheet(t, empty, domain.MunicipalityDataSheet, nil)

	tests := []struct {
		name    string
		path    string
		sheet   string
		wantErr string
	}{
		{"missing file", filepath.Join(dir, "missing.xlsx"), domain.MunicipalityDataSheet, "failed to open file"},
		{"missing sheet", noGrade, "Annat blad", "failed to read sheet"},
		{"missing grade column", noGrade, domain.MunicipalityDataSheet, `no "årskurs" column`},
		{"empty sheet", empty, domain.MunicipalityDataSheet, "is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCleanedSheet(tt.path, tt.sheet)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
