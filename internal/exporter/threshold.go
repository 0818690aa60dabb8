package exporter

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "franvarocli/internal/errors"
	"franvarocli/pkg/contracts/domain"
)

// ThresholdLabel returns the measure label of a threshold report, e.g.
// ">11% total frånvaro".
func ThresholdLabel(threshold float64) string {
	return fmt.Sprintf(">%s%% total frånvaro", formatFloat(threshold))
}

// PerGradeCountColumn returns the count column header of the per-grade sheet.
func PerGradeCountColumn(threshold float64) string {
	return fmt.Sprintf("Antal >%s%%", formatFloat(threshold))
}

// WriteThresholdReport writes the overall count and the per-grade counts to
// a two-sheet workbook at path.
func WriteThresholdReport(ctx context.Context, path string, report domain.ThresholdReport, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	wb := newWorkbook()

	summary, err := wb.addSheet(domain.ThresholdSummarySheet)
	if err != nil {
		wb.close()
		return apperrors.NewStorageError("failed to add summary sheet", err)
	}
	rows := [][]interface{}{
		{"Mått", "Antal"},
		{ThresholdLabel(report.Threshold), report.Total},
	}
	for i, row := range rows {
		if err := wb.setRow(summary, i+1, row); err != nil {
			wb.close()
			return apperrors.NewStorageError("failed to write summary sheet", err)
		}
	}

	perGrade, err := wb.addSheet(domain.ThresholdPerGradeSheet)
	if err != nil {
		wb.close()
		return apperrors.NewStorageError("failed to add per-grade sheet", err)
	}
	if err := wb.setRow(perGrade, 1, []interface{}{domain.ColumnGrade, PerGradeCountColumn(report.Threshold)}); err != nil {
		wb.close()
		return apperrors.NewStorageError("failed to write per-grade sheet", err)
	}
	for i, g := range report.PerGrade {
		if err := wb.setRow(perGrade, i+2, []interface{}{g.Grade, g.Count}); err != nil {
			wb.close()
			return apperrors.NewStorageError("failed to write per-grade sheet", err)
		}
	}

	if err := wb.autosize(); err != nil {
		wb.close()
		return apperrors.NewStorageError("failed to size columns", err)
	}
	if err := wb.saveAs(path); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to write %s", path), err)
	}

	logger.InfoContext(ctx, "threshold report written",
		slog.String("path", path),
		slog.Int("over_threshold", report.Total))
	return nil
}
