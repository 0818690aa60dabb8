package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	apperrors "franvarocli/internal/errors"
	"franvarocli/pkg/contracts/domain"
)

// MergedSheet is the only sheet of the merged export file.
const MergedSheet = "Data"

// WriteMerged streams the merged grid, header first, to sheet MergedSheet of
// a new workbook at path. Every cell is written as text.
func WriteMerged(ctx context.Context, path string, report *domain.MergedReport, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), MergedSheet); err != nil {
		return apperrors.NewStorageError("failed to name merged sheet", err)
	}

	sw, err := f.NewStreamWriter(MergedSheet)
	if err != nil {
		return apperrors.NewStorageError("failed to create stream writer", err)
	}

	for i, row := range report.Grid() {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return apperrors.NewStorageError("invalid cell", err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := sw.SetRow(cell, values); err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("failed to write row %d", i+1), err)
		}
	}
	if err := sw.Flush(); err != nil {
		return apperrors.NewStorageError("failed to flush merged sheet", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create output directory", err)
	}
	if err := f.SaveAs(path); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to write %s", path), err)
	}

	logger.InfoContext(ctx, "merged file written",
		slog.String("path", path),
		slog.Int("rows", len(report.Rows)),
		slog.Int("files", len(report.Sources)))
	return nil
}
