package dataprocessing

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"

	apperrors "franvarocli/internal/errors"
	"franvarocli/internal/grades"
	"franvarocli/pkg/contracts/domain"
)

// ClassMarker introduces a class section in an export. It is matched
// case-sensitively anywhere in a cell.
const ClassMarker = "Klass:"

// rowFields is the number of cells kept after the school: name, identifier
// and the measurements.
const rowFields = 2 + domain.MeasurementCount

// DropReason says why the cleaner excluded a row.
type DropReason string

const (
	DropClassMarker       DropReason = "marker"
	DropNoClass           DropReason = "no_class"
	DropNoNumeric         DropReason = "no_numeric"
	DropNoID              DropReason = "no_id"
	DropLeakedHeader      DropReason = "leaked_header"
	DropEmptyMeasurements DropReason = "empty_measurements"
)

// CleanStats counts the rows seen and excluded during one cleaning pass.
type CleanStats struct {
	Read    int
	Kept    int
	Dropped map[DropReason]int
}

// DroppedTotal returns the number of excluded rows.
func (s CleanStats) DroppedTotal() int {
	n := 0
	for _, c := range s.Dropped {
		n += c
	}
	return n
}

// DroppedByReason returns the drop counts keyed by reason name.
func (s CleanStats) DroppedByReason() map[string]int {
	out := make(map[string]int, len(s.Dropped))
	for r, c := range s.Dropped {
		out[string(r)] = c
	}
	return out
}

// CleanResult is the output of Classifier.Clean.
type CleanResult struct {
	Rows  []domain.AttendanceRow
	Stats CleanStats
}

// scanState is carried from row to row while cleaning.
type scanState struct {
	currentClass string
}

// Classifier turns merged export rows into attendance rows.
type Classifier struct {
	resolver *grades.Resolver
	logger   *slog.Logger
}

// NewClassifier creates a classifier. A nil resolver uses the default mixed
// class configuration.
func NewClassifier(resolver *grades.Resolver, logger *slog.Logger) *Classifier {
	if resolver == nil {
		resolver = grades.NewResolver(grades.DefaultMixedClasses())
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{resolver: resolver, logger: logger}
}

// Clean folds over the merged rows (header included) and returns every
// student row that survives filtering. Zero surviving rows is an error.
func (c *Classifier) Clean(ctx context.Context, rows [][]string) (*CleanResult, error) {
	for _, a := range c.resolver.Ambiguities() {
		c.logger.WarnContext(ctx, "mixed class names overlap, first configured match wins",
			slog.String("container", a.Container),
			slog.String("contained", a.Contained))
	}

	result := &CleanResult{
		Stats: CleanStats{Dropped: make(map[DropReason]int)},
	}

	state := scanState{}
	for _, row := range rows {
		result.Stats.Read++

		var (
			rec    *domain.AttendanceRow
			reason DropReason
		)
		state, rec, reason = c.classify(state, row)
		if rec == nil {
			result.Stats.Dropped[reason]++
			continue
		}
		result.Rows = append(result.Rows, *rec)
	}
	result.Stats.Kept = len(result.Rows)

	c.logger.InfoContext(ctx, "cleaning complete",
		slog.Int("read", result.Stats.Read),
		slog.Int("kept", result.Stats.Kept),
		slog.Int("dropped", result.Stats.DroppedTotal()))

	if len(result.Rows) == 0 {
		return result, apperrors.NewNoDataError(
			"no student rows found; expected school in column 1, \"Klass:\" rows and at least one numeric measurement",
			apperrors.ErrNoDataRows)
	}
	return result, nil
}

// classify handles one row. It returns the next state and either a record or
// the reason the row was dropped.
func (c *Classifier) classify(state scanState, row []string) (scanState, *domain.AttendanceRow, DropReason) {
	if class, ok := classMarker(row); ok {
		return scanState{currentClass: class}, nil, DropClassMarker
	}
	if state.currentClass == "" {
		return state, nil, DropNoClass
	}

	school := ""
	var rest []string
	if len(row) > 0 {
		school = strings.TrimSpace(row[0])
		rest = row[1:]
	}
	for len(rest) > 0 && IsBlankCell(rest[0]) {
		rest = rest[1:]
	}

	if !HasNumericCell(rest) {
		return state, nil, DropNoNumeric
	}

	var fields [rowFields]string
	copy(fields[:], rest)

	id := strings.TrimSpace(fields[1])
	if id == "" {
		return state, nil, DropNoID
	}
	if IsLeakedHeader(id) {
		return state, nil, DropLeakedHeader
	}

	rec := &domain.AttendanceRow{
		School:      school,
		ClassName:   state.currentClass,
		StudentName: fields[0],
		StudentID:   fields[1],
	}
	copy(rec.Measurements[:], fields[2:])

	if grade, ok := c.resolver.Resolve(rec.ClassName, rec.StudentID); ok {
		rec.Grade = grade
	} else {
		rec.Grade = grades.DeriveGrade(rec.ClassName)
	}

	if v, ok := NormalizePercent(rec.Measurements[domain.MeasurementPresentPercent]); ok {
		rec.AttendancePercent = domain.Float64Ptr(v)
	}
	if v, ok := NormalizePercent(rec.Measurements[domain.MeasurementUnauthorizedPercent]); ok {
		rec.UnauthorizedPercent = domain.Float64Ptr(v)
	}
	if rec.AttendancePercent == nil && rec.UnauthorizedPercent == nil {
		return state, nil, DropEmptyMeasurements
	}

	return state, rec, ""
}

// classMarker returns the class named by the first cell containing
// ClassMarker: the trimmed text after the cell's first colon.
func classMarker(row []string) (string, bool) {
	for _, cell := range row {
		if !strings.Contains(cell, ClassMarker) {
			continue
		}
		_, after, _ := strings.Cut(cell, ":")
		return strings.TrimSpace(after), true
	}
	return "", false
}

// IsBlankCell reports whether a cell is empty or holds the text "nan".
func IsBlankCell(cell string) bool {
	s := strings.TrimSpace(cell)
	return s == "" || strings.EqualFold(s, "nan")
}

// HasNumericCell reports whether any cell parses as a number. NaN does not
// count; infinities do.
func HasNumericCell(cells []string) bool {
	for _, cell := range cells {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err == nil && !math.IsNaN(v) {
			return true
		}
	}
	return false
}

var leakedHeaderTokens = []string{"personnr", "namn", "undv_tid"}

// IsLeakedHeader reports whether an identifier cell is actually a header
// label repeated inside the data.
func IsLeakedHeader(id string) bool {
	lower := strings.ToLower(id)
	for _, token := range leakedHeaderTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}
