package domain

// AbsenceBand is one of the fixed percentage ranges students are counted in.
type AbsenceBand string

// Total absence bands, lowest first.
const (
	TotalBand0To5   AbsenceBand = "0,0-5,0%"
	TotalBand5To15  AbsenceBand = "5,1-15,0%"
	TotalBand15To30 AbsenceBand = "15,1-30,0%"
	TotalBand30To50 AbsenceBand = "30,1-50,0%"
	TotalBandOver50 AbsenceBand = "50,1--%"
)

// Unauthorized absence bands, lowest first.
const (
	UnauthorizedBand1To5   AbsenceBand = "1,0-5,0%"
	UnauthorizedBand5To15  AbsenceBand = "5,1-15,0%"
	UnauthorizedBandOver15 AbsenceBand = "15,1--%"
)

// TotalBands lists the total absence bands in column order.
var TotalBands = []AbsenceBand{TotalBand0To5, TotalBand5To15, TotalBand15To30, TotalBand30To50, TotalBandOver50}

// UnauthorizedBands lists the unauthorized absence bands in column order.
var UnauthorizedBands = []AbsenceBand{UnauthorizedBand1To5, UnauthorizedBand5To15, UnauthorizedBandOver15}

// GradeSummary holds the band counts for one grade.
type GradeSummary struct {
	Grade        string              `json:"grade"`
	Total        map[AbsenceBand]int `json:"total"`
	Unauthorized map[AbsenceBand]int `json:"unauthorized"`
	Students     int                 `json:"students"`
}

// NewGradeSummary returns a summary row with every band present and zeroed.
func NewGradeSummary(grade string) *GradeSummary {
	s := &GradeSummary{
		Grade:        grade,
		Total:        make(map[AbsenceBand]int, len(TotalBands)),
		Unauthorized: make(map[AbsenceBand]int, len(UnauthorizedBands)),
	}
	for _, b := range TotalBands {
		s.Total[b] = 0
	}
	for _, b := range UnauthorizedBands {
		s.Unauthorized[b] = 0
	}
	return s
}

// SummaryTable is the per-grade overview of one dataset slice, sorted by grade.
type SummaryTable struct {
	Rows []GradeSummary `json:"rows"`
}

// StudentCount returns the number of students across all grades.
func (t SummaryTable) StudentCount() int {
	n := 0
	for _, r := range t.Rows {
		n += r.Students
	}
	return n
}

// Grade returns the summary row for a grade.
func (t SummaryTable) Grade(grade string) (GradeSummary, bool) {
	for _, r := range t.Rows {
		if r.Grade == grade {
			return r, true
		}
	}
	return GradeSummary{}, false
}
