package domain

// SchoolColumn is the header of the column prepended to every merged row.
const SchoolColumn = "skola"

// SkippedFile records an input file left out of a merge.
type SkippedFile struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// MergedReport is the combined raw export of all schools. Header is the first
// file's header row prefixed with SchoolColumn; every row in Rows starts with
// the school name.
type MergedReport struct {
	Header  []string      `json:"header"`
	Rows    [][]string    `json:"rows"`
	Sources []string      `json:"sources"`
	Skipped []SkippedFile `json:"skipped,omitempty"`
}

// Grid returns the header followed by all rows, as written to the merge file.
func (m *MergedReport) Grid() [][]string {
	grid := make([][]string, 0, len(m.Rows)+1)
	if m.Header != nil {
		grid = append(grid, m.Header)
	}
	return append(grid, m.Rows...)
}
