package grades

import (
	"strings"
	"unicode"
)

const (
	// GradePrefix is prepended to the grade digit, "Åk 3".
	GradePrefix = "Åk "

	// PreSchoolGrade is used for class labels without any digit.
	PreSchoolGrade = "Åk F"

	// InstitutionalPrefix marks classes (anpassad grundsärskola) whose labels
	// are kept as they are instead of being mapped to a grade.
	InstitutionalPrefix = "agsä"
)

// DeriveGrade maps a free-text class label to a grade. Labels starting with
// InstitutionalPrefix (any case) are returned trimmed and otherwise
// unchanged; otherwise the first digit in the label decides the grade and a
// label without digits is PreSchoolGrade. The result is never empty.
func DeriveGrade(label string) string {
	label = strings.TrimSpace(label)
	if hasPrefixFold(label, InstitutionalPrefix) {
		return label
	}
	for _, r := range label {
		if unicode.IsDigit(r) {
			return GradePrefix + string(r)
		}
	}
	return PreSchoolGrade
}

func hasPrefixFold(s, prefix string) bool {
	sr := []rune(s)
	pr := []rune(prefix)
	if len(sr) < len(pr) {
		return false
	}
	return strings.EqualFold(string(sr[:len(pr)]), prefix)
}
