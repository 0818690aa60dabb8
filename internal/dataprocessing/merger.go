package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	apperrors "franvarocli/internal/errors"
	"franvarocli/pkg/contracts/domain"
)

// DefaultHeaderSkipRows is the number of leading rows skipped in every input
// after the first.
const DefaultHeaderSkipRows = 4

// MergerConfig holds options for the Merger.
type MergerConfig struct {
	HeaderSkipRows int
	Reader         SheetReader // ReadSheet when nil
}

// Merger concatenates per-school attendance exports into one report.
type Merger struct {
	logger   *slog.Logger
	skipRows int
	read     SheetReader
}

// NewMerger creates a merger.
func NewMerger(logger *slog.Logger, cfg MergerConfig) *Merger {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.HeaderSkipRows < 0 {
		cfg.HeaderSkipRows = DefaultHeaderSkipRows
	}
	if cfg.Reader == nil {
		cfg.Reader = ReadSheet
	}
	return &Merger{
		logger:   logger,
		skipRows: cfg.HeaderSkipRows,
		read:     cfg.Reader,
	}
}

// SchoolName returns the school a file belongs to: its name without extension.
func SchoolName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Merge reads files in the given order. The first readable file supplies the
// header (prefixed with the school column) and all of its rows; later files
// have their first HeaderSkipRows rows skipped. Unreadable files are logged
// and skipped.
func (m *Merger) Merge(ctx context.Context, files []string) (*domain.MergedReport, error) {
	if len(files) == 0 {
		return nil, apperrors.NewNoDataError("no attendance exports to merge", apperrors.ErrNoInputFiles)
	}

	report := &domain.MergedReport{}

	for _, path := range files {
		school := SchoolName(path)

		rows, err := m.read(path)
		if err == nil && len(rows) == 0 {
			err = fmt.Errorf("sheet is empty")
		}
		if err != nil {
			inputErr := apperrors.NewInputError(filepath.Base(path), err)
			m.logger.WarnContext(ctx, "skipping unreadable export",
				slog.String("file", filepath.Base(path)),
				slog.String("error", inputErr.Error()))
			report.Skipped = append(report.Skipped, domain.SkippedFile{
				Name:   filepath.Base(path),
				Reason: err.Error(),
			})
			continue
		}

		start := m.skipRows
		if report.Header == nil {
			report.Header = append([]string{domain.SchoolColumn}, rows[0]...)
			start = 1
		}

		added := 0
		for i := start; i < len(rows); i++ {
			report.Rows = append(report.Rows, append([]string{school}, rows[i]...))
			added++
		}
		report.Sources = append(report.Sources, school)

		m.logger.DebugContext(ctx, "merged export",
			slog.String("school", school),
			slog.Int("rows", added))
	}

	if len(report.Sources) == 0 {
		return nil, apperrors.NewNoDataError(
			fmt.Sprintf("none of %d attendance exports could be read", len(files)),
			apperrors.ErrNoInputFiles)
	}

	m.logger.InfoContext(ctx, "merge complete",
		slog.Int("files", len(report.Sources)),
		slog.Int("skipped", len(report.Skipped)),
		slog.Int("rows", len(report.Rows)))

	return report, nil
}
