// Package schoolyear validates school-year identifiers ("2025-2026") and
// creates the per-year directory layout under the data root.
package schoolyear

import (
	"fmt"
	"os"
	"path/filepath"

	apperrors "franvarocli/internal/errors"
)

// Domain is the raw-data subdirectory holding attendance exports.
const Domain = "franvaro"

// Reasons a school year is rejected. Each wraps apperrors.ErrInvalidSchoolYear.
var (
	ErrMalformed      = fmt.Errorf("%w: not in the format YYYY-YYYY", apperrors.ErrInvalidSchoolYear)
	ErrNotDigits      = fmt.Errorf("%w: years must be digits", apperrors.ErrInvalidSchoolYear)
	ErrNotConsecutive = fmt.Errorf("%w: end year must be start year + 1", apperrors.ErrInvalidSchoolYear)
)

// SchoolYear is a validated school year spanning two consecutive years.
type SchoolYear struct {
	Start int
	End   int
}

// String renders the year as YYYY-YYYY.
func (y SchoolYear) String() string {
	return fmt.Sprintf("%04d-%04d", y.Start, y.End)
}

// Next returns the following school year.
func (y SchoolYear) Next() SchoolYear {
	return SchoolYear{Start: y.End, End: y.End + 1}
}

// Parse validates s as YYYY-YYYY where the second year follows the first.
// Every failure wraps apperrors.ErrInvalidSchoolYear.
func Parse(s string) (SchoolYear, error) {
	if len(s) != 9 || s[4] != '-' {
		return SchoolYear{}, apperrors.NewValidationError(
			fmt.Sprintf("malformed school year %q, use the format YYYY-YYYY (e.g. 2025-2026)", s),
			ErrMalformed)
	}
	start, ok := digits(s[:4])
	end, ok2 := digits(s[5:])
	if !ok || !ok2 {
		return SchoolYear{}, apperrors.NewValidationError(
			fmt.Sprintf("invalid years in %q", s), ErrNotDigits)
	}
	if end != start+1 {
		return SchoolYear{}, apperrors.NewValidationError(
			fmt.Sprintf("school year %q does not span consecutive years", s), ErrNotConsecutive)
	}
	return SchoolYear{Start: start, End: end}, nil
}

// IsValid reports whether s parses as a school year.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

func digits(s string) (int, bool) {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// Layout is the pair of directories belonging to one school year.
type Layout struct {
	Year      SchoolYear
	RawDir    string
	OutputDir string
}

// LayoutFor returns the directories of year under dataDir without touching
// the file system.
func LayoutFor(dataDir string, year SchoolYear) Layout {
	return Layout{
		Year:      year,
		RawDir:    filepath.Join(dataDir, "raw", Domain, year.String()),
		OutputDir: filepath.Join(dataDir, "output", year.String()),
	}
}

// Scaffold validates year and creates its raw and output directories under
// dataDir, each with a .gitkeep describing its purpose. Nothing is created
// when the year is invalid.
func Scaffold(dataDir, year string) (Layout, error) {
	sy, err := Parse(year)
	if err != nil {
		return Layout{}, err
	}
	layout := LayoutFor(dataDir, sy)

	keep := []struct {
		dir  string
		note string
	}{
		{layout.RawDir, fmt.Sprintf("# Lägg råa .xls frånvarorapporter här för läsåret %s\n", sy)},
		{layout.OutputDir, fmt.Sprintf("# Processerade rapporter för läsåret %s sparas här\n", sy)},
	}
	for _, k := range keep {
		if err := os.MkdirAll(k.dir, 0755); err != nil {
			return Layout{}, apperrors.NewStorageError("failed to create directory "+k.dir, err)
		}
		if err := os.WriteFile(filepath.Join(k.dir, ".gitkeep"), []byte(k.note), 0644); err != nil {
			return Layout{}, apperrors.NewStorageError("failed to write .gitkeep in "+k.dir, err)
		}
	}
	return layout, nil
}
