package operations

// operation Step identifiers
const (
	StageIDMerge     = "merge"
	StageIDClean     = "clean"
	StageIDThreshold = "threshold"
)

// operation Step names
const (
	StageNameMerge     = "Sammanslagning"
	StageNameClean     = "Rensning och kategorisering"
	StageNameThreshold = "Frånvaro över gränsvärde"
)

// Context keys for operation state
const (
	ContextKeyMergedReport    = "merged_report"
	ContextKeyCleanResult     = "clean_result"
	ContextKeyThresholdReport = "threshold_report"
)
