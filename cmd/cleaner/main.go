// Command cleaner classifies the merged rows by grade and writes the categorized
// report with one data and one summary sheet per school.
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
	return app.Main("cleaner", []string{operations.StageIDClean}, args, stdout)
}
