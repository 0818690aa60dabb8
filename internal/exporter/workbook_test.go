package exporter

import (
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestSafeSheetName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "Busavsjö - Översikt", "Busavsjö - Översikt"},
		{"forbidden characters", `A:B\C/D?E*F[G]H`, "A_B_C_D_E_F_G_H"},
		{"truncated", "Kvarnbackaskolan och Rörviksskolan - Rensad data", "Kvarnbackaskolan och Rörvikssko"},
		{"exactly 31", strings.Repeat("å", 31), strings.Repeat("å", 31)},
		{"32 multibyte", strings.Repeat("ö", 32), strings.Repeat("ö", 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeSheetName(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.LessOrEqual(t, utf8.RuneCountInString(got), MaxSheetNameLength)
		})
	}
}

func TestWorkbookUniqueSheetNames(t *testing.T) {
	wb := newWorkbook()
	defer wb.close()

	long := strings.Repeat("x", 40)

	first, err := wb.addSheet(long)
	require.NoError(t, err)
	second, err := wb.addSheet(long)
	require.NoError(t, err)
	third, err := wb.addSheet(strings.ToUpper(long))
	require.NoError(t, err)

	assert.Equal(t, strings.Repeat("x", 31), first)
	assert.Equal(t, strings.Repeat("x", 27)+" (2)", second)
	assert.Equal(t, strings.Repeat("X", 27)+" (3)", third)
	assert.Equal(t, []string{first, second, third}, wb.f.GetSheetList())
}

func TestWorkbookAutosize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "sized.xlsx")

	wb := newWorkbook()
	sheet, err := wb.addSheet("Data")
	require.NoError(t, err)

	require.NoError(t, wb.setRow(sheet, 1, []interface{}{"a", "header", nil}))
	require.NoError(t, wb.setRow(sheet, 2, []interface{}{"längre värde", 87.5, "x"}))
	require.NoError(t, wb.setRow(sheet, 3, []interface{}{strings.Repeat("y", 300)}))
	require.NoError(t, wb.autosize())
	require.NoError(t, wb.saveAs(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	widthA, err := f.GetColWidth(sheet, "A")
	require.NoError(t, err)
	assert.Equal(t, float64(maxColumnWidth), widthA)

	widthB, err := f.GetColWidth(sheet, "B")
	require.NoError(t, err)
	assert.Equal(t, float64(len("header")+autosizePadding), widthB)

	widthC, err := f.GetColWidth(sheet, "C")
	require.NoError(t, err)
	assert.Equal(t, float64(1+autosizePadding), widthC)
}
