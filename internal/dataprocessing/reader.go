package dataprocessing

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// xlsMaxColumns is the BIFF8 column limit.
const xlsMaxColumns = 256

// SheetReader reads the first worksheet of a spreadsheet into a text grid.
type SheetReader func(path string) ([][]string, error)

// ReadSheet reads the first worksheet of an .xls or .xlsx file. Every cell is
// returned as its displayed text; trailing empty rows are dropped.
func ReadSheet(path string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readXLSX(path)
	case ".xls":
		return readXLS(path)
	default:
		return nil, fmt.Errorf("unsupported spreadsheet format: %s", filepath.Ext(path))
	}
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return trimTrailingEmptyRows(rows), nil
}

func readXLS(path string) (rows [][]string, err error) {
	// the BIFF decoder panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, fmt.Errorf("failed to decode xls: %v", r)
		}
	}()

	// The decoder ignores its charset argument: BIFF8 strings are decoded as
	// Latin-1 or UTF-16 according to their own flags.
	wb, err := xls.Open(path, "")
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows = make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		rows = append(rows, xlsRowCells(xlsRow(sheet, i)))
	}
	return trimTrailingEmptyRows(rows), nil
}

// xlsRow returns row i of sheet, or nil when the file has no record for it.
// WorkSheet.Row dereferences the row before returning it, so a blank row
// panics instead of returning nil.
func xlsRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

// xlsRowCells reads every column of row. A row built from cell records
// alone reports LastCol 0, so the scan runs to the format's column limit and
// trailing empty cells are dropped.
func xlsRowCells(row *xls.Row) []string {
	if row == nil {
		return nil
	}
	cells := make([]string, xlsMaxColumns)
	for c := range cells {
		cells[c] = xlsCell(row, c)
	}
	n := len(cells)
	for n > 0 && cells[n-1] == "" {
		n--
	}
	return cells[:n]
}

func xlsCell(row *xls.Row, c int) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	return row.Col(c)
}

func trimTrailingEmptyRows(rows [][]string) [][]string {
	for len(rows) > 0 && isEmptyRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	return rows
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
