// Package dataprocessing turns per-school attendance exports into cleaned
// student rows and the counts the reports are built from.
//
// # Architecture
//
// The package is organized into four steps:
//
// 1. Reader: reads the first sheet of an .xls or .xlsx export as text
// 2. Merger: concatenates the exports, keeping one header and tagging rows with the school
// 3. Classifier: tracks "Klass:" sections, filters non-student rows and derives grades
// 4. Summarizer and threshold counts: bucket students by absence
//
// # Usage
//
//	merger := dataprocessing.NewMerger(logger, dataprocessing.MergerConfig{HeaderSkipRows: 4})
//	merged, err := merger.Merge(ctx, files)
//	if err != nil {
//	    return err
//	}
//
//	classifier := dataprocessing.NewClassifier(resolver, logger)
//	result, err := classifier.Clean(ctx, merged.Grid())
//	if err != nil {
//	    return err
//	}
//
//	overview := dataprocessing.Summarize(result.Rows)
//
// # Data Flow
//
//	exports → Merger → MergedReport → Classifier → AttendanceRows → Summarize / CountOverThreshold
//
// # Error Handling
//
// An unreadable export is skipped with a warning and listed in
// MergedReport.Skipped. No readable export, or no surviving student row, is
// returned as a NO_DATA error wrapping ErrNoInputFiles or ErrNoDataRows.
// Rows that cannot be interpreted are dropped and counted in CleanStats,
// never reported as errors.
package dataprocessing
