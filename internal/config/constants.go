package config

// Application constants
const (
	// Application Info
	AppName = "Frånvarorapporter"

	// EnvPrefix namespaces every environment variable (FRANVARO_PATHS_SCHOOL_YEAR)
	EnvPrefix = "FRANVARO"

	// Defaults
	DefaultDataDir          = "data"
	DefaultLogsDir          = "logs"
	DefaultSchoolYear       = "2025-2026"
	DefaultHeaderSkipRows   = 4
	DefaultAbsenceThreshold = 11.0

	// Well-known output files, inside output/<school year>/
	MergedFileName    = "franvaro.xlsx"
	CleanedFileName   = "franvaro_rensad_kategoriserad.xlsx"
	ThresholdFileName = "franvaro_med_over11.xlsx"

	// LegacyMergedFileName is the merge output of earlier releases
	LegacyMergedFileName = "franvaro.xls"
)

// OutputFileNames lists every file the steps write. None of them is ever an
// input, even when the raw and output directories are the same.
var OutputFileNames = []string{MergedFileName, LegacyMergedFileName, CleanedFileName, ThresholdFileName}
