// Command threshold counts the students whose total absence is above the
// configured threshold, overall and per grade.
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
	return app.Main("threshold", []string{operations.StageIDThreshold}, args, stdout)
}
