package domain

// MeasurementCount is the number of measurement cells following the student
// name and identifier in an attendance export row.
const MeasurementCount = 8

// Measurement column positions inside AttendanceRow.Measurements.
const (
	MeasurementScheduledTime       = iota // undv_tid
	MeasurementLessons                    // lekt
	MeasurementPresentMinutes             // n_min
	MeasurementAuthorizedMinutes          // gf_min
	MeasurementUnauthorizedMinutes        // f_min
	MeasurementPresentPercent             // n_pct
	MeasurementAuthorizedPercent          // gf_pct
	MeasurementUnauthorizedPercent        // f_pct
)

// MeasurementHeaders are the column names of the measurement cells, in order.
var MeasurementHeaders = [MeasurementCount]string{
	"undv_tid", "lekt", "n_min", "gf_min", "f_min", "n_pct", "gf_pct", "f_pct",
}

// AttendanceRow is one student's cleaned attendance record.
type AttendanceRow struct {
	School       string                   `json:"school"`
	ClassName    string                   `json:"class_name"`
	StudentName  string                   `json:"student_name"`
	StudentID    string                   `json:"student_id"`
	Measurements [MeasurementCount]string `json:"measurements"`
	Grade        string                   `json:"grade"`

	// AttendancePercent is the share of scheduled time the student was present.
	// Nil when the source cell could not be read as a percentage.
	AttendancePercent *float64 `json:"attendance_percent,omitempty"`

	// UnauthorizedPercent is the share of scheduled time with unauthorized
	// (ogiltig) absence. Nil when missing.
	UnauthorizedPercent *float64 `json:"unauthorized_percent,omitempty"`
}

// TotalAbsencePercent returns 100 minus the attendance percentage.
func (r AttendanceRow) TotalAbsencePercent() (float64, bool) {
	if r.AttendancePercent == nil {
		return 0, false
	}
	return 100 - *r.AttendancePercent, true
}

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 {
	return &v
}
