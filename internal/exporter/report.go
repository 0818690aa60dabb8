package exporter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	apperrors "franvarocli/internal/errors"
	"franvarocli/pkg/contracts/domain"
)

// dataColumnFills are the background colors of the first five columns of a
// cleaned data sheet, starting at column A.
var dataColumnFills = []string{"FFFFFF", "C0C0C0", "C4D79B", "FFFF99", "FF9999"}

// ReportWriter writes the cleaned and categorized attendance workbook.
type ReportWriter struct {
	logger *slog.Logger
}

// NewReportWriter creates a report writer
func NewReportWriter(logger *slog.Logger) *ReportWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportWriter{logger: logger}
}

// WriteCleanedReport writes a cleaned-data sheet and an overview sheet per
// section, in order, to path. Columns are sized after all sheets are written.
func (w *ReportWriter) WriteCleanedReport(ctx context.Context, path string, sections []domain.ReportSection) error {
	wb := newWorkbook()

	styles, err := newDataStyles(wb.f)
	if err != nil {
		wb.close()
		return apperrors.NewStorageError("failed to create cell styles", err)
	}

	for _, s := range sections {
		dataSheet, err := wb.addSheet(domain.CleanedDataSheet(s.Scope))
		if err != nil {
			wb.close()
			return apperrors.NewStorageError("failed to add data sheet", err)
		}
		if err := writeDataSheet(wb, dataSheet, s.Rows, styles); err != nil {
			wb.close()
			return apperrors.NewStorageError("failed to write data sheet", err).WithContext("sheet", dataSheet)
		}

		overviewSheet, err := wb.addSheet(domain.OverviewSheet(s.Scope))
		if err != nil {
			wb.close()
			return apperrors.NewStorageError("failed to add overview sheet", err)
		}
		if err := writeSummarySheet(wb, overviewSheet, s.Summary); err != nil {
			wb.close()
			return apperrors.NewStorageError("failed to write overview sheet", err).WithContext("sheet", overviewSheet)
		}

		w.logger.DebugContext(ctx, "report section written",
			slog.String("scope", s.Scope),
			slog.String("data_sheet", dataSheet),
			slog.Int("rows", len(s.Rows)))
	}

	if err := wb.autosize(); err != nil {
		wb.close()
		return apperrors.NewStorageError("failed to size columns", err)
	}
	if err := wb.saveAs(path); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to write %s", path), err)
	}

	w.logger.InfoContext(ctx, "cleaned report written",
		slog.String("path", path),
		slog.Int("sheets", len(wb.sheets)))
	return nil
}

// CleanedRow returns the cells of one cleaned data row in CleanedColumns
// order. Percentages are numbers, missing ones empty.
func CleanedRow(r domain.AttendanceRow) []interface{} {
	values := make([]interface{}, 0, len(domain.CleanedColumns))
	values = append(values, r.School, r.ClassName, r.StudentName, r.StudentID)
	for _, m := range r.Measurements {
		values = append(values, m)
	}
	return append(values, r.Grade, percentCell(r.AttendancePercent), percentCell(r.UnauthorizedPercent))
}

func writeDataSheet(wb *workbook, sheet string, rows []domain.AttendanceRow, styles []int) error {
	header := make([]interface{}, len(domain.CleanedColumns))
	for i, c := range domain.CleanedColumns {
		header[i] = c
	}
	if err := wb.setRow(sheet, 1, header); err != nil {
		return err
	}
	for i, r := range rows {
		if err := wb.setRow(sheet, i+2, CleanedRow(r)); err != nil {
			return err
		}
	}

	lastRow := len(rows) + 1
	for i, style := range styles {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := wb.f.SetCellStyle(sheet, col+"1", fmt.Sprintf("%s%d", col, lastRow), style); err != nil {
			return fmt.Errorf("failed to style column %s: %w", col, err)
		}
	}
	return nil
}

func writeSummarySheet(wb *workbook, sheet string, table domain.SummaryTable) error {
	header := domain.SummaryHeader()
	values := make([]interface{}, len(header))
	for i, h := range header {
		values[i] = h
	}
	if err := wb.setRow(sheet, 1, values); err != nil {
		return err
	}

	for i, g := range table.Rows {
		row := []interface{}{g.Grade}
		for _, n := range g.Counts() {
			row = append(row, n)
		}
		if err := wb.setRow(sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// newDataStyles creates one style per filled column: solid fill, centered,
// thin border, bold in column A.
func newDataStyles(f *excelize.File) ([]int, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	styles := make([]int, 0, len(dataColumnFills))
	for i, color := range dataColumnFills {
		id, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Font:      &excelize.Font{Bold: i == 0},
			Border:    border,
		})
		if err != nil {
			return nil, err
		}
		styles = append(styles, id)
	}
	return styles, nil
}
