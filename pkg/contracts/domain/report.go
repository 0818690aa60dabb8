package domain

// MunicipalityScope names the all-schools slice of the report.
const MunicipalityScope = "Kommun"

// Sheet names of the cleaned report workbook. Municipality sheets put the
// scope last ("Rensad data - Kommun"); per-school sheets put it first
// ("<school> - Rensad data").
const (
	CleanedDataSuffix = "Rensad data"
	OverviewSuffix    = "Översikt"
)

func sheetName(scope, suffix string) string {
	if scope == MunicipalityScope {
		return suffix + " - " + scope
	}
	return scope + " - " + suffix
}

// CleanedDataSheet returns the name of the cleaned-data sheet for scope.
func CleanedDataSheet(scope string) string {
	return sheetName(scope, CleanedDataSuffix)
}

// OverviewSheet returns the name of the summary sheet for scope.
func OverviewSheet(scope string) string {
	return sheetName(scope, OverviewSuffix)
}

// MunicipalityDataSheet is the first sheet of the cleaned report.
var MunicipalityDataSheet = CleanedDataSheet(MunicipalityScope)

// Column names of the cleaned data sheets.
const (
	ColumnSchool       = SchoolColumn
	ColumnClass        = "klass"
	ColumnName         = "namn"
	ColumnStudentID    = "personnr"
	ColumnGrade        = "årskurs"
	ColumnAttendance   = "närvaro_pct"
	ColumnUnauthorized = "ogiltig_frånvaro_pct"
)

// CleanedColumns is the header row of a cleaned data sheet.
var CleanedColumns = func() []string {
	cols := []string{ColumnSchool, ColumnClass, ColumnName, ColumnStudentID}
	cols = append(cols, MeasurementHeaders[:]...)
	return append(cols, ColumnGrade, ColumnAttendance, ColumnUnauthorized)
}()

// Summary sheet columns.
const (
	SummaryGradeColumn       = "Årskurs"
	StudentCountColumn       = "Elevantal"
	totalColumnPrefix        = "Total frånvaro "
	unauthorizedColumnPrefix = "Ogiltig frånvaro "
)

// TotalColumn returns the summary column header for a total absence band.
func TotalColumn(b AbsenceBand) string { return totalColumnPrefix + string(b) }

// UnauthorizedColumn returns the summary column header for an unauthorized
// absence band.
func UnauthorizedColumn(b AbsenceBand) string { return unauthorizedColumnPrefix + string(b) }

// SummaryHeader returns the header row of a summary sheet.
func SummaryHeader() []string {
	header := []string{SummaryGradeColumn}
	for _, b := range TotalBands {
		header = append(header, TotalColumn(b))
	}
	for _, b := range UnauthorizedBands {
		header = append(header, UnauthorizedColumn(b))
	}
	return append(header, StudentCountColumn)
}

// Counts returns the summary row's counts in SummaryHeader column order,
// without the grade.
func (s GradeSummary) Counts() []int {
	counts := make([]int, 0, len(TotalBands)+len(UnauthorizedBands)+1)
	for _, b := range TotalBands {
		counts = append(counts, s.Total[b])
	}
	for _, b := range UnauthorizedBands {
		counts = append(counts, s.Unauthorized[b])
	}
	return append(counts, s.Students)
}

// Threshold report sheets.
const (
	ThresholdSummarySheet  = "Sammanställning"
	ThresholdPerGradeSheet = "Per årskurs"
)

// ReportSection is one scope of the cleaned report: the municipality as a
// whole or one school, with its rows and their summary.
type ReportSection struct {
	Scope   string
	Rows    []AttendanceRow
	Summary SummaryTable
}
