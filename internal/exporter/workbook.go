package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

// MaxSheetNameLength is the longest sheet name Excel accepts.
const MaxSheetNameLength = 31

// autosizePadding is added to the longest value of a column.
const autosizePadding = 2

// maxColumnWidth is the widest column Excel accepts.
const maxColumnWidth = 255

var invalidSheetChars = regexp.MustCompile(`[:\\/?*\[\]]`)

// SafeSheetName replaces characters Excel forbids in sheet names with "_" and
// truncates the result to MaxSheetNameLength characters.
func SafeSheetName(name string) string {
	return truncateRunes(invalidSheetChars.ReplaceAllString(name, "_"), MaxSheetNameLength)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// workbook wraps an excelize file with unique sheet naming and column width
// tracking.
type workbook struct {
	f       *excelize.File
	used    map[string]bool
	widths  map[string]map[int]int
	sheets  []string
	renamed bool
}

func newWorkbook() *workbook {
	return &workbook{
		f:      excelize.NewFile(),
		used:   make(map[string]bool),
		widths: make(map[string]map[int]int),
	}
}

// addSheet creates a sheet with a safe, unique name and returns that name.
// Names colliding case-insensitively get a " (n)" suffix.
func (w *workbook) addSheet(name string) (string, error) {
	name = w.uniqueName(SafeSheetName(name))

	if !w.renamed {
		// The new file's default sheet becomes the first sheet
		if err := w.f.SetSheetName(w.f.GetSheetName(0), name); err != nil {
			return "", fmt.Errorf("failed to name sheet %q: %w", name, err)
		}
		w.renamed = true
	} else if _, err := w.f.NewSheet(name); err != nil {
		return "", fmt.Errorf("failed to create sheet %q: %w", name, err)
	}

	w.used[strings.ToLower(name)] = true
	w.widths[name] = make(map[int]int)
	w.sheets = append(w.sheets, name)
	return name, nil
}

func (w *workbook) uniqueName(name string) string {
	if !w.used[strings.ToLower(name)] {
		return name
	}
	for n := 2; ; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate := truncateRunes(name, MaxSheetNameLength-len([]rune(suffix))) + suffix
		if !w.used[strings.ToLower(candidate)] {
			return candidate
		}
	}
}

// setRow writes values into row (1-based) and records their widths.
func (w *workbook) setRow(sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of sheet %q: %w", row, sheet, err)
	}

	widths := w.widths[sheet]
	for i, v := range values {
		if n := displayWidth(v); n > widths[i+1] {
			widths[i+1] = n
		}
	}
	return nil
}

// autosize sets every written column of every sheet to its longest value
// plus padding.
func (w *workbook) autosize() error {
	for _, sheet := range w.sheets {
		for col, width := range w.widths[sheet] {
			name, err := excelize.ColumnNumberToName(col)
			if err != nil {
				return err
			}
			width = min(width+autosizePadding, maxColumnWidth)
			if err := w.f.SetColWidth(sheet, name, name, float64(width)); err != nil {
				return fmt.Errorf("failed to size column %s of sheet %q: %w", name, sheet, err)
			}
		}
	}
	return nil
}

// saveAs writes the workbook to path, creating the directory, and closes it.
func (w *workbook) saveAs(path string) error {
	defer w.f.Close()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := w.f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (w *workbook) close() {
	w.f.Close()
}
