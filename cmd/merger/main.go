// Command merger combines the raw attendance exports of a school year into
// franvaro.xlsx, one row per export row, tagged with its school.
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
	return app.Main("merger", []string{operations.StageIDMerge}, args, stdout)
}
