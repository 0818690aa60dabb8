package exporter

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// formatFloat formats a float64 the shortest way that round-trips
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// percentCell returns the cell value of an optional percentage; nil leaves
// the cell empty.
func percentCell(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

// cellText returns the text a cell value displays as
func cellText(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return formatFloat(val)
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprint(val)
	}
}

// displayWidth returns the length of a cell value, counted in characters
func displayWidth(v interface{}) int {
	return utf8.RuneCountInString(cellText(v))
}
