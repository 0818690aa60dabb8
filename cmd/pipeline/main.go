// Command pipeline runs merge, clean and threshold in one go.
//
// Usage:
//
//	pipeline [-year 2025-2026] [-in dir] [-out dir]
package main

import (
	"io"
	"os"

	"franvarocli/internal/app"
	"franvarocli/internal/operations"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	return app.Main("pipeline", operations.AllStepIDs, args, stdout)
}
