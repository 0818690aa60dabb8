// Package exporter writes the attendance workbooks.
//
// This package contains three writers:
//
// WriteMerged: streams the merged raw exports to the "Data" sheet of
// franvaro.xlsx, every cell as text.
//
// ReportWriter: writes the cleaned report, a "Rensad data" and an "Översikt"
// sheet for the municipality and for every school. Data sheets have their
// first five columns filled, centered and bordered; columns are sized to
// their content once all sheets are written.
//
// WriteThresholdReport: writes the count of students above the absence
// threshold, overall and per grade.
//
// Sheet names are made safe with SafeSheetName: characters Excel rejects are
// replaced with "_", names are cut to 31 characters and collisions get a
// numeric suffix.
//
// Example usage:
//
//	writer := exporter.NewReportWriter(logger)
//	err := writer.WriteCleanedReport(ctx, paths.CleanedFile, dataprocessing.Sections(rows))
package exporter
