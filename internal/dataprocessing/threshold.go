package dataprocessing

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"franvarocli/pkg/contracts/domain"
)

// DefaultAbsenceThreshold is the total absence percentage above which a
// student is counted in the threshold report.
const DefaultAbsenceThreshold = 11.0

// CountOverThreshold counts students whose total absence is strictly above
// threshold, overall and per grade. Every grade present in rows is listed,
// sorted; rows without an attendance value never count.
func CountOverThreshold(rows []domain.AttendanceRow, threshold float64) domain.ThresholdReport {
	perGrade := make(map[string]int)
	report := domain.ThresholdReport{Threshold: threshold}

	for _, row := range rows {
		if _, ok := perGrade[row.Grade]; !ok {
			perGrade[row.Grade] = 0
		}
		absence, ok := row.TotalAbsencePercent()
		if !ok || absence <= threshold {
			continue
		}
		perGrade[row.Grade]++
		report.Total++
	}

	gradeNames := make([]string, 0, len(perGrade))
	for g := range perGrade {
		gradeNames = append(gradeNames, g)
	}
	sort.Strings(gradeNames)

	report.PerGrade = make([]domain.GradeCount, 0, len(gradeNames))
	for _, g := range gradeNames {
		report.PerGrade = append(report.PerGrade, domain.GradeCount{Grade: g, Count: perGrade[g]})
	}
	return report
}

// ReadCleanedSheet reads a cleaned data sheet written by the report writer
// back into attendance rows. Columns are located by header name; only the
// school, class, name, identifier, grade and percentage columns are required.
func ReadCleanedSheet(path, sheet string) ([]domain.AttendanceRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	columns := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		columns[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{domain.ColumnGrade, domain.ColumnAttendance} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("sheet %q has no %q column", sheet, required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	number := func(row []string, name string) *float64 {
		v, err := strconv.ParseFloat(cell(row, name), 64)
		if err != nil {
			return nil
		}
		return domain.Float64Ptr(v)
	}

	out := make([]domain.AttendanceRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		rec := domain.AttendanceRow{
			School:              cell(row, domain.ColumnSchool),
			ClassName:           cell(row, domain.ColumnClass),
			StudentName:         cell(row, domain.ColumnName),
			StudentID:           cell(row, domain.ColumnStudentID),
			Grade:               cell(row, domain.ColumnGrade),
			AttendancePercent:   number(row, domain.ColumnAttendance),
			UnauthorizedPercent: number(row, domain.ColumnUnauthorized),
		}
		for i, h := range domain.MeasurementHeaders {
			rec.Measurements[i] = cell(row, h)
		}
		out = append(out, rec)
	}
	return out, nil
}
