package domain

// GradeCount is the number of students in one grade above a threshold.
type GradeCount struct {
	Grade string `json:"grade"`
	Count int    `json:"count"`
}

// ThresholdReport counts students whose total absence exceeds Threshold.
type ThresholdReport struct {
	Threshold float64      `json:"threshold"`
	Total     int          `json:"total"`
	PerGrade  []GradeCount `json:"per_grade"`
}
