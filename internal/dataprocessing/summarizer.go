package dataprocessing

import (
	"sort"

	"franvarocli/pkg/contracts/domain"
)

// TotalAbsenceBand returns the band for a total absence percentage. Band
// edges belong to the lower band.
func TotalAbsenceBand(absence float64) domain.AbsenceBand {
	switch {
	case absence > 50:
		return domain.TotalBandOver50
	case absence > 30:
		return domain.TotalBand30To50
	case absence > 15:
		return domain.TotalBand15To30
	case absence > 5:
		return domain.TotalBand5To15
	default:
		return domain.TotalBand0To5
	}
}

// UnauthorizedAbsenceBand returns the band for an unauthorized absence
// percentage. Values below 1 are not counted in any band.
func UnauthorizedAbsenceBand(p float64) (domain.AbsenceBand, bool) {
	switch {
	case p > 15:
		return domain.UnauthorizedBandOver15, true
	case p > 5:
		return domain.UnauthorizedBand5To15, true
	case p >= 1:
		return domain.UnauthorizedBand1To5, true
	default:
		return "", false
	}
}

// Summarize counts students per grade and band. Every row counts toward its
// grade's student total; missing percentages count in no band.
func Summarize(rows []domain.AttendanceRow) domain.SummaryTable {
	byGrade := make(map[string]*domain.GradeSummary)
	for _, row := range rows {
		s, ok := byGrade[row.Grade]
		if !ok {
			s = domain.NewGradeSummary(row.Grade)
			byGrade[row.Grade] = s
		}

		if absence, ok := row.TotalAbsencePercent(); ok {
			s.Total[TotalAbsenceBand(absence)]++
		}
		if row.UnauthorizedPercent != nil {
			if band, ok := UnauthorizedAbsenceBand(*row.UnauthorizedPercent); ok {
				s.Unauthorized[band]++
			}
		}
		s.Students++
	}

	table := domain.SummaryTable{Rows: make([]domain.GradeSummary, 0, len(byGrade))}
	for _, s := range byGrade {
		table.Rows = append(table.Rows, *s)
	}
	sort.Slice(table.Rows, func(i, j int) bool {
		return table.Rows[i].Grade < table.Rows[j].Grade
	})
	return table
}

// Schools returns the distinct schools of rows, sorted.
func Schools(rows []domain.AttendanceRow) []string {
	seen := make(map[string]struct{})
	var schools []string
	for _, row := range rows {
		if _, ok := seen[row.School]; ok {
			continue
		}
		seen[row.School] = struct{}{}
		schools = append(schools, row.School)
	}
	sort.Strings(schools)
	return schools
}

// FilterBySchool returns the rows belonging to school, in order.
func FilterBySchool(rows []domain.AttendanceRow, school string) []domain.AttendanceRow {
	var out []domain.AttendanceRow
	for _, row := range rows {
		if row.School == school {
			out = append(out, row)
		}
	}
	return out
}

// Sections splits rows into report sections: the municipality first, then
// one per school in name order, each with its own summary.
func Sections(rows []domain.AttendanceRow) []domain.ReportSection {
	sections := []domain.ReportSection{{
		Scope:   domain.MunicipalityScope,
		Rows:    rows,
		Summary: Summarize(rows),
	}}
	for _, school := range Schools(rows) {
		schoolRows := FilterBySchool(rows, school)
		sections = append(sections, domain.ReportSection{
			Scope:   school,
			Rows:    schoolRows,
			Summary: Summarize(schoolRows),
		})
	}
	return sections
}
