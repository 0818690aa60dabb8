package dataprocessing

import (
	"regexp"
	"strconv"
	"strings"
)

var percentNumber = regexp.MustCompile(`\d+\.?\d*`)

var percentCleaner = strings.NewReplacer("%", "", ",", ".", "\u00a0", "")

// NormalizePercent extracts a percentage from export text such as "87,5%" or
// "100". It returns false when no number can be found.
func NormalizePercent(text string) (float64, bool) {
	match := percentNumber.FindString(percentCleaner.Replace(text))
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
