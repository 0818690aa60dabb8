package grades

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// MixedClass describes one class with students from several grades.
type MixedClass struct {
	ClassName string `yaml:"class_name"`
	// Grades lists the grades present in the class.
	Grades []string `yaml:"grades"`
	// BirthYearGrades maps the first two characters of a personnummer to a grade.
	BirthYearGrades map[string]string `yaml:"birth_year_grades"`
}

// Ambiguity is a pair of configured class names where Contained is a
// case-insensitive substring of Container. A class label matching the
// container also matches the contained name, so configuration order decides
// which one wins.
type Ambiguity struct {
	Container string
	Contained string
}

// Resolver looks up grades for mixed-grade classes. It is immutable after
// construction and safe to share.
type Resolver struct {
	classes []MixedClass
}

type mixedClassFile struct {
	MixedClasses []MixedClass `yaml:"mixed_classes"`
}

// DefaultMixedClasses returns the built-in mixed-grade configuration.
func DefaultMixedClasses() []MixedClass {
	return []MixedClass{
		{
			ClassName: "rörvik 1-2",
			Grades:    []string{"Åk 1", "Åk 2"},
			BirthYearGrades: map[string]string{
				"18": "Åk 1", // born 2018
				"17": "Åk 2", // born 2017
			},
		},
	}
}

// NewResolver creates a resolver over classes. The slice order is the match
// order for substring lookups.
func NewResolver(classes []MixedClass) *Resolver {
	cp := make([]MixedClass, 0, len(classes))
	for _, c := range classes {
		m := make(map[string]string, len(c.BirthYearGrades))
		for k, v := range c.BirthYearGrades {
			m[k] = v
		}
		cp = append(cp, MixedClass{
			ClassName:       strings.TrimSpace(c.ClassName),
			Grades:          append([]string(nil), c.Grades...),
			BirthYearGrades: m,
		})
	}
	return &Resolver{classes: cp}
}

// LoadMixedClasses reads a YAML file with a top-level mixed_classes list.
// An empty path returns DefaultMixedClasses.
func LoadMixedClasses(path string) ([]MixedClass, error) {
	if path == "" {
		return DefaultMixedClasses(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mixed class file %s: %w", path, err)
	}
	var f mixedClassFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse mixed class file %s: %w", path, err)
	}
	for i, c := range f.MixedClasses {
		if strings.TrimSpace(c.ClassName) == "" {
			return nil, fmt.Errorf("mixed class %d in %s has no class_name", i+1, path)
		}
		for prefix := range c.BirthYearGrades {
			if len([]rune(prefix)) != 2 {
				return nil, fmt.Errorf("mixed class %q: birth year key %q must be two characters", c.ClassName, prefix)
			}
		}
	}
	return f.MixedClasses, nil
}

// Lookup finds the configuration for a class label: exact match first, then
// the first configured name contained case-insensitively in the label.
func (r *Resolver) Lookup(className string) (MixedClass, bool) {
	className = strings.TrimSpace(className)
	if className == "" {
		return MixedClass{}, false
	}
	for _, c := range r.classes {
		if c.ClassName == className {
			return c, true
		}
	}
	lower := strings.ToLower(className)
	for _, c := range r.classes {
		if c.ClassName != "" && strings.Contains(lower, strings.ToLower(c.ClassName)) {
			return c, true
		}
	}
	return MixedClass{}, false
}

// IsMixed reports whether the class label is a configured mixed-grade class.
func (r *Resolver) IsMixed(className string) bool {
	_, ok := r.Lookup(className)
	return ok
}

// Resolve returns the grade of a student in a mixed-grade class. It reports
// false when the class is not configured, the identifier is shorter than two
// characters, or its birth year prefix is not mapped.
func (r *Resolver) Resolve(className, studentID string) (string, bool) {
	c, ok := r.Lookup(className)
	if !ok {
		return "", false
	}
	id := []rune(strings.TrimSpace(studentID))
	if len(id) < 2 {
		return "", false
	}
	grade, ok := c.BirthYearGrades[string(id[:2])]
	return grade, ok
}

// Names returns the configured class names in match order.
func (r *Resolver) Names() []string {
	names := make([]string, 0, len(r.classes))
	for _, c := range r.classes {
		names = append(names, c.ClassName)
	}
	return names
}

// Ambiguities lists configured names that substring-match one another.
func (r *Resolver) Ambiguities() []Ambiguity {
	var out []Ambiguity
	for i, a := range r.classes {
		for j, b := range r.classes {
			if i == j || a.ClassName == "" || b.ClassName == "" {
				continue
			}
			la, lb := strings.ToLower(a.ClassName), strings.ToLower(b.ClassName)
			if la == lb && j < i {
				continue
			}
			if strings.Contains(la, lb) {
				out = append(out, Ambiguity{Container: a.ClassName, Contained: b.ClassName})
			}
		}
	}
	return out
}
