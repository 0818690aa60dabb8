package operations

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"franvarocli/internal/config"
	"franvarocli/internal/dataprocessing"
	apperrors "franvarocli/internal/errors"
	"franvarocli/internal/exporter"
	"franvarocli/internal/files"
	"franvarocli/internal/grades"
	"franvarocli/internal/infrastructure"
	"franvarocli/internal/validation"
	"franvarocli/pkg/contracts/domain"
)

// StepOptions carries what every step needs
type StepOptions struct {
	Paths    *config.Paths
	Pipeline config.PipelineConfig
	Resolver *grades.Resolver // default mixed classes when nil
	Logger   *slog.Logger
	Metrics  *infrastructure.PipelineMetrics
	Out      io.Writer // progress lines; io.Discard when nil
}

func (o StepOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o StepOptions) printf(format string, args ...interface{}) {
	if o.Out == nil {
		return
	}
	fmt.Fprintf(o.Out, format, args...)
}

// MergeStep combines the raw exports of the school year into the merge file
type MergeStep struct {
	BaseStage
	opts StepOptions
}

// NewMergeStep creates the merge step
func NewMergeStep(opts StepOptions) *MergeStep {
	return &MergeStep{
		BaseStage: NewBaseStage(StageIDMerge, StageNameMerge),
		opts:      opts,
	}
}

// Execute discovers the raw exports, merges them and writes the merge file
func (s *MergeStep) Execute(ctx context.Context, state *OperationState) error {
	logger := infrastructure.WithComponent(s.opts.logger(), StageIDMerge)
	rawDir := s.opts.Paths.RawDir

	found, err := files.NewDiscovery("").FindSpreadsheets(rawDir, config.OutputFileNames...)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperrors.NewNoDataError("raw directory does not exist: "+rawDir, apperrors.ErrNoInputFiles)
		}
		return apperrors.NewStorageError("failed to list raw directory", err)
	}
	logger.InfoContext(ctx, "found input files",
		slog.String("dir", rawDir),
		slog.Int("count", len(found)))

	merger := dataprocessing.NewMerger(logger, dataprocessing.MergerConfig{
		HeaderSkipRows: s.opts.Pipeline.HeaderSkipRows,
	})
	report, err := merger.Merge(ctx, files.Paths(found))
	if err != nil {
		return err
	}
	for _, skipped := range report.Skipped {
		s.opts.printf("Kunde inte läsa %s: %s\n", skipped.Name, skipped.Reason)
	}
	s.opts.Metrics.RecordMerge(ctx, len(report.Sources), len(report.Skipped))

	if err := exporter.WriteMerged(ctx, s.opts.Paths.MergedFile, report, logger); err != nil {
		return err
	}

	state.SetContext(ContextKeyMergedReport, report)
	s.opts.printf("Skapade '%s' med %d rapporter\n", s.opts.Paths.MergedFile, len(report.Sources))
	return nil
}

// CleanStep turns the merged rows into the categorized report
type CleanStep struct {
	BaseStage
	opts StepOptions
}

// NewCleanStep creates the clean step
func NewCleanStep(opts StepOptions) *CleanStep {
	return &CleanStep{
		BaseStage: NewBaseStage(StageIDClean, StageNameClean),
		opts:      opts,
	}
}

// Execute cleans the merge result of an earlier step, or the merge file when
// the step runs alone, and writes the categorized workbook
func (s *CleanStep) Execute(ctx context.Context, state *OperationState) error {
	logger := infrastructure.WithComponent(s.opts.logger(), StageIDClean)

	var rows [][]string
	if report, ok := state.MergedReport(); ok {
		rows = report.Grid()
	} else {
		if err := validation.NewFileValidator(logger).ValidateFile(s.opts.Paths.MergedFile); err != nil {
			return apperrors.NewNoDataError("merged report missing, run the merge step first", err)
		}
		grid, err := dataprocessing.ReadSheet(s.opts.Paths.MergedFile)
		if err != nil {
			return apperrors.NewNoDataError("could not read merged report "+s.opts.Paths.MergedFile, err)
		}
		rows = grid
	}

	result, err := dataprocessing.NewClassifier(s.opts.Resolver, logger).Clean(ctx, rows)
	if result != nil {
		s.opts.Metrics.RecordClean(ctx, result.Stats.Read, result.Stats.Kept, result.Stats.DroppedByReason())
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNoDataRows) {
			s.opts.printf("Hittade inga datarader att skriva ut. Kontrollera att filen har skola i kolumn 1, rader med 'Klass:' och minst en datarad med numeriskt värde.\n")
		}
		return err
	}
	for reason, n := range result.Stats.DroppedByReason() {
		logger.DebugContext(ctx, "rows dropped",
			slog.String("reason", reason),
			slog.Int("count", n))
	}

	sections := dataprocessing.Sections(result.Rows)
	if err := exporter.NewReportWriter(logger).WriteCleanedReport(ctx, s.opts.Paths.CleanedFile, sections); err != nil {
		return err
	}

	state.SetContext(ContextKeyCleanResult, result)
	s.opts.printf("Klar! Filen sparades till %s\n", s.opts.Paths.CleanedFile)
	return nil
}

// ThresholdStep counts the students above the absence threshold
type ThresholdStep struct {
	BaseStage
	opts StepOptions
}

// NewThresholdStep creates the threshold step
func NewThresholdStep(opts StepOptions) *ThresholdStep {
	return &ThresholdStep{
		BaseStage: NewBaseStage(StageIDThreshold, StageNameThreshold),
		opts:      opts,
	}
}

// Execute counts the cleaned rows of an earlier step, or the municipality
// sheet of the cleaned report when the step runs alone
func (s *ThresholdStep) Execute(ctx context.Context, state *OperationState) error {
	logger := infrastructure.WithComponent(s.opts.logger(), StageIDThreshold)

	var rows []domain.AttendanceRow
	if result, ok := state.CleanResult(); ok {
		rows = result.Rows
	} else {
		if err := validation.NewFileValidator(logger).ValidateFile(s.opts.Paths.CleanedFile); err != nil {
			return apperrors.NewNoDataError("cleaned report missing, run the clean step first", err)
		}
		read, err := dataprocessing.ReadCleanedSheet(s.opts.Paths.CleanedFile, domain.MunicipalityDataSheet)
		if err != nil {
			return apperrors.NewNoDataError("could not read cleaned report "+s.opts.Paths.CleanedFile, err)
		}
		rows = read
	}
	if len(rows) == 0 {
		return apperrors.NewNoDataError("cleaned report has no student rows", apperrors.ErrNoDataRows)
	}

	threshold := s.opts.Pipeline.AbsenceThreshold
	if threshold <= 0 {
		threshold = dataprocessing.DefaultAbsenceThreshold
	}
	report := dataprocessing.CountOverThreshold(rows, threshold)
	logger.InfoContext(ctx, "threshold counted",
		slog.Float64("threshold", threshold),
		slog.Int("students", len(rows)),
		slog.Int("over", report.Total))
	s.opts.printf("Antal elever med %s: %d\n", exporter.ThresholdLabel(threshold), report.Total)

	if err := exporter.WriteThresholdReport(ctx, s.opts.Paths.ThresholdFile, report, logger); err != nil {
		return err
	}

	state.SetContext(ContextKeyThresholdReport, report)
	s.opts.printf("Klar! Filen sparades till %s\n", s.opts.Paths.ThresholdFile)
	return nil
}

// AllStepIDs lists the steps of a full run in order
var AllStepIDs = []string{StageIDMerge, StageIDClean, StageIDThreshold}

// NewStep creates the step with the given ID
func NewStep(id string, opts StepOptions) (Step, error) {
	switch id {
	case StageIDMerge:
		return NewMergeStep(opts), nil
	case StageIDClean:
		return NewCleanStep(opts), nil
	case StageIDThreshold:
		return NewThresholdStep(opts), nil
	default:
		return nil, fmt.Errorf("unknown step: %s", id)
	}
}

// RegisterSteps creates and registers the steps with the given IDs, in order
func (m *Manager) RegisterSteps(opts StepOptions, ids ...string) error {
	for _, id := range ids {
		step, err := NewStep(id, opts)
		if err != nil {
			return err
		}
		if err := m.Register(step); err != nil {
			return err
		}
	}
	return nil
}
