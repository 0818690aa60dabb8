// Package grades derives a student's grade level (årskurs) from the class
// label of an attendance export.
//
// Ordinary classes carry the grade as the first digit of their label ("3B"
// is Åk 3). Mixed-grade classes (blandklasser) hold students from several
// grades; for those the grade is looked up from the two leading characters of
// the student's personnummer, which encode the birth year.
//
// Example usage:
//
//	resolver := grades.NewResolver(grades.DefaultMixedClasses())
//	if grade, ok := resolver.Resolve("Rörvik 1-2", "170512-1234"); ok {
//	    // grade == "Åk 2"
//	}
//	grade := grades.DeriveGrade("4A") // "Åk 4"
package grades
