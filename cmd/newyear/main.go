// Command newyear creates the directory layout of a new school year:
//
//	data/raw/franvaro/<year>/
//	data/output/<year>/
//
// Usage:
//
//	newyear 2025-2026
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"franvarocli/internal/config"
	"franvarocli/internal/files"
	"franvarocli/internal/schoolyear"
)

func main() {
	os.Exit(run(os.Args[1:], dataDir(), os.Stdout))
}

// dataDir returns the configured data root, falling back to the defaults
// when the configuration cannot be loaded
func dataDir() string {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}
	paths, err := config.GetPaths(cfg)
	if err != nil {
		return config.DefaultDataDir
	}
	return paths.DataDir
}

func run(args []string, dataDir string, stdout io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stdout, "Användning: newyear 2025-2026")
		fmt.Fprintln(stdout, "\nExempel:")
		fmt.Fprintln(stdout, "  newyear 2025-2026")
		fmt.Fprintln(stdout, "  newyear 2026-2027")
		return 1
	}
	year := args[0]

	layout, err := schoolyear.Scaffold(dataDir, year)
	if err != nil {
		switch {
		case errors.Is(err, schoolyear.ErrMalformed):
			fmt.Fprintln(stdout, "Felaktigt format! Använd format YYYY-YYYY (t.ex. 2025-2026)")
		case errors.Is(err, schoolyear.ErrNotConsecutive):
			fmt.Fprintln(stdout, "Slutåret måste vara startår + 1")
		case errors.Is(err, schoolyear.ErrNotDigits):
			fmt.Fprintln(stdout, "Ogiltiga årtal")
		default:
			fmt.Fprintf(stdout, "Kunde inte skapa mappstrukturen: %v\n", err)
		}
		return 1
	}

	fmt.Fprintf(stdout, "Skapade mappstruktur för läsår %s:\n", layout.Year)
	fmt.Fprintf(stdout, "   %s\n", layout.RawDir)
	fmt.Fprintf(stdout, "   %s\n", layout.OutputDir)

	if years := existingYears(filepath.Dir(layout.RawDir)); len(years) > 1 {
		fmt.Fprintf(stdout, "\nLäsår med rådata: %v\n", years)
	}

	fmt.Fprintln(stdout, "\nNästa steg:")
	fmt.Fprintf(stdout, "   1. Sätt FRANVARO_PATHS_SCHOOL_YEAR=%s (eller school_year i config.yaml)\n", layout.Year)
	fmt.Fprintf(stdout, "   2. Lägg rådata i %s\n", layout.RawDir)
	fmt.Fprintln(stdout, "   3. Kör pipeline")
	return 0
}

// existingYears lists the school years that already have a raw directory
func existingYears(rawRoot string) []string {
	dirs, err := files.NewDiscovery("").ListDirectories(rawRoot)
	if err != nil {
		return nil
	}
	var years []string
	for _, d := range dirs {
		if schoolyear.IsValid(d.Name) {
			years = append(years, d.Name)
		}
	}
	return years
}
