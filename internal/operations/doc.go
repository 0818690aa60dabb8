// Package operations runs the report steps of one school year.
//
// A run is a sequence of named steps executed one after another by a
// Manager:
//
//   - merge: combine the raw exports in raw/franvaro/<year>/ into franvaro.xlsx
//   - clean: classify the merged rows and write the categorized report
//   - threshold: count students above the total absence threshold
//
// Steps share results through the OperationState context, so a full run
// never re-reads its own output. A step run alone reads the previous step's
// file instead. Each step executes inside its own span and records its
// duration; the first failing step fails the run and the remaining steps are
// marked skipped.
//
// Example usage:
//
//	manager := operations.NewManager(logger, providers.Tracer, metrics)
//	if err := manager.RegisterSteps(opts, operations.AllStepIDs...); err != nil {
//		return err
//	}
//	state := operations.NewOperationState(runID)
//	if err := manager.Execute(ctx, state); err != nil {
//		return err
//	}
package operations
