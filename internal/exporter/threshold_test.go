package exporter

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"franvarocli/pkg/contracts/domain"
)

func TestThresholdLabels(t *testing.T) {
	assert.Equal(t, ">11% total frånvaro", ThresholdLabel(11))
	assert.Equal(t, ">12.5% total frånvaro", ThresholdLabel(12.5))
	assert.Equal(t, "Antal >11%", PerGradeCountColumn(11))
}

func TestWriteThresholdReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "franvaro_med_over11.xlsx")
	report := domain.ThresholdReport{
		Threshold: 11,
		Total:     3,
		PerGrade: []domain.GradeCount{
			{Grade: "Åk 3", Count: 2},
			{Grade: "Åk 5", Count: 1},
			{Grade: "Åk F", Count: 0},
		},
	}

	require.NoError(t, WriteThresholdReport(context.Background(), path, report, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{domain.ThresholdSummarySheet, domain.ThresholdPerGradeSheet}, f.GetSheetList())

	summary, err := f.GetRows(domain.ThresholdSummarySheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Mått", "Antal"},
		{">11% total frånvaro", "3"},
	}, summary)

	perGrade, err := f.GetRows(domain.ThresholdPerGradeSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"årskurs", "Antal >11%"},
		{"Åk 3", "2"},
		{"Åk 5", "1"},
		{"Åk F", "0"},
	}, perGrade)
}
