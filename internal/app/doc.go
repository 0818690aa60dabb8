// Package app wires configuration, logging, telemetry and the report steps
// into one command run.
//
// Every step command (merger, cleaner, threshold, pipeline) is a thin main
// around Main:
//
//	func main() {
//		os.Exit(app.Main("merger", []string{operations.StageIDMerge}, os.Args[1:], os.Stdout))
//	}
//
// Main loads the configuration, resolves the paths of the school year
// (optionally overridden by -in, -out and -year), initializes the global
// logger and OpenTelemetry, runs the steps and flushes the metrics file.
// Errors are printed to stdout and turned into exit code 1; the package
// never calls os.Exit itself.
package app
