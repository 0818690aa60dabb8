package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"franvarocli/internal/schoolyear"
)

// Paths contains all the application paths for one school year.
// This is the single source of truth for file locations.
type Paths struct {
	RootDir      string
	DataDir      string
	RawDir       string // data/raw/franvaro/<year>
	OutputDir    string // data/output/<year>
	ProcessedDir string
	LogsDir      string
	SchoolYear   string

	// Well-known files in OutputDir
	MergedFile    string
	CleanedFile   string
	ThresholdFile string
}

// NewPaths derives every path from the root directory, the data and logs
// directories (relative to root unless absolute) and the school year.
func NewPaths(rootDir, dataDir, logsDir, year string) (*Paths, error) {
	sy, err := schoolyear.Parse(year)
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(rootDir, dataDir)
	}
	if !filepath.IsAbs(logsDir) {
		logsDir = filepath.Join(rootDir, logsDir)
	}
	layout := schoolyear.LayoutFor(dataDir, sy)

	return &Paths{
		RootDir:       rootDir,
		DataDir:       dataDir,
		RawDir:        layout.RawDir,
		OutputDir:     layout.OutputDir,
		ProcessedDir:  filepath.Join(dataDir, "processed"),
		LogsDir:       logsDir,
		SchoolYear:    sy.String(),
		MergedFile:    filepath.Join(layout.OutputDir, MergedFileName),
		CleanedFile:   filepath.Join(layout.OutputDir, CleanedFileName),
		ThresholdFile: filepath.Join(layout.OutputDir, ThresholdFileName),
	}, nil
}

// GetPaths resolves the paths of cfg. Without a configured root directory
// all paths are relative to the executable directory, never the current
// working directory.
func GetPaths(cfg *Config) (*Paths, error) {
	root := cfg.Paths.RootDir
	if root == "" {
		exeDir, err := ExecutableDir()
		if err != nil {
			return nil, err
		}
		root = exeDir
	}
	return NewPaths(root, cfg.Paths.DataDir, cfg.Paths.LogsDir, cfg.Paths.SchoolYear)
}

// ExecutableDir returns the directory of the running binary with symlinks resolved
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	return filepath.Dir(exe), nil
}

// WithSchoolYear returns the paths of another school year under the same roots
func (p *Paths) WithSchoolYear(year string) (*Paths, error) {
	return NewPaths(p.RootDir, p.DataDir, p.LogsDir, year)
}

// WithDirs returns a copy of the paths with the raw and output directories
// replaced. Empty arguments keep the current directory; the well-known files
// follow the output directory.
func (p *Paths) WithDirs(rawDir, outputDir string) *Paths {
	out := *p
	if rawDir != "" {
		out.RawDir = rawDir
	}
	if outputDir != "" {
		out.OutputDir = outputDir
		out.MergedFile = filepath.Join(outputDir, MergedFileName)
		out.CleanedFile = filepath.Join(outputDir, CleanedFileName)
		out.ThresholdFile = filepath.Join(outputDir, ThresholdFileName)
	}
	return &out
}

// EnsureDirectories creates the directories every step writes to
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.RawDir,
		p.OutputDir,
		p.ProcessedDir,
		p.LogsDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		logger.Debug("Ensured directory exists", slog.String("directory", dir))
	}

	return nil
}

// LogFilePath resolves a configured log file path against the root directory
func (p *Paths) LogFilePath(configured string) string {
	if configured == "" {
		return filepath.Join(p.LogsDir, "franvaro.log")
	}
	if filepath.IsAbs(configured) {
		return configured
	}
	return filepath.Join(p.RootDir, configured)
}

// ResolvePath resolves a configured path against the root directory
func (p *Paths) ResolvePath(configured string) string {
	if configured == "" || filepath.IsAbs(configured) {
		return configured
	}
	return filepath.Join(p.RootDir, configured)
}

// LogPathResolution logs the resolved paths at debug level
func (p *Paths) LogPathResolution() {
	slog.Default().Debug("Resolved paths",
		slog.String("root_dir", p.RootDir),
		slog.String("raw_dir", p.RawDir),
		slog.String("output_dir", p.OutputDir),
		slog.String("logs_dir", p.LogsDir),
		slog.String("school_year", p.SchoolYear))
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
