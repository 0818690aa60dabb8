package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"franvarocli/internal/config"
	apperrors "franvarocli/internal/errors"
	"franvarocli/internal/grades"
	"franvarocli/internal/infrastructure"
	"franvarocli/internal/operations"
	"franvarocli/internal/validation"
	"franvarocli/pkg/contracts"
)

const shutdownTimeout = 10 * time.Second

// Options selects what one command runs
type Options struct {
	Name  string   // command name, used in logs
	Steps []string // step IDs in execution order

	// Overrides of the configured directories and school year
	InDir  string
	OutDir string
	Year   string

	Stdout io.Writer
}

// Application holds the wired components of one command run
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.PipelineMetrics
	System        *infrastructure.SystemMetrics
	Manager       *operations.Manager

	name      string
	stdout    io.Writer
	traceFile *os.File
}

// NewApplication resolves paths, initializes logging and telemetry and
// registers the requested steps
func NewApplication(cfg *config.Config, opts Options) (*Application, error) {
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}

	paths, err := config.GetPaths(cfg)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to resolve paths", err)
	}
	if opts.Year != "" {
		if paths, err = paths.WithSchoolYear(opts.Year); err != nil {
			return nil, err
		}
	}
	paths = paths.WithDirs(opts.InDir, opts.OutDir)

	if err := paths.EnsureDirectories(); err != nil {
		return nil, apperrors.NewStorageError("failed to ensure directories", err)
	}

	logCfg := cfg.Logging
	logCfg.FilePath = paths.LogFilePath(cfg.Logging.FilePath)
	logger, err := infrastructure.InitializeLogger(logCfg)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to initialize logger", err)
	}
	logger = infrastructure.WithComponent(logger, opts.Name)
	paths.LogPathResolution()

	if err := validation.NewFileValidator(logger).ValidateOutputDirectory(paths.OutputDir); err != nil {
		return nil, apperrors.NewStorageError("output directory not usable", err)
	}

	a := &Application{
		Config: cfg,
		Paths:  paths,
		Logger: logger,
		name:   opts.Name,
		stdout: opts.Stdout,
	}

	otelCfg := infrastructure.DefaultOTelConfig()
	otelCfg.TraceExporter = cfg.Telemetry.TraceExporter
	if cfg.Telemetry.TraceFile != "" && cfg.Telemetry.TraceExporter == "stdout" {
		f, err := os.Create(paths.ResolvePath(cfg.Telemetry.TraceFile))
		if err != nil {
			return nil, apperrors.NewStorageError("failed to create trace file", err)
		}
		a.traceFile = f
		otelCfg.TraceWriter = f
	}
	a.OTelProviders, err = infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		a.closeTraceFile()
		return nil, apperrors.NewConfigError("failed to initialize OpenTelemetry", err)
	}
	a.Metrics, err = infrastructure.CreatePipelineMetrics(a.OTelProviders.Meter)
	if err != nil {
		a.closeTraceFile()
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}

	a.System, err = infrastructure.NewSystemMetrics(a.OTelProviders.Meter)
	if err != nil {
		a.closeTraceFile()
		return nil, fmt.Errorf("failed to create system metrics: %w", err)
	}

	resolver, err := loadResolver(paths.ResolvePath(cfg.Pipeline.MixedClassesFile))
	if err != nil {
		a.closeTraceFile()
		return nil, err
	}

	a.Manager = operations.NewManager(logger, a.OTelProviders.Tracer, a.Metrics)
	err = a.Manager.RegisterSteps(operations.StepOptions{
		Paths:    paths,
		Pipeline: cfg.Pipeline,
		Resolver: resolver,
		Logger:   logger,
		Metrics:  a.Metrics,
		Out:      opts.Stdout,
	}, opts.Steps...)
	if err != nil {
		a.closeTraceFile()
		return nil, err
	}

	return a, nil
}

// loadResolver returns the default mixed-class resolver, or the one
// configured in path
func loadResolver(path string) (*grades.Resolver, error) {
	if path == "" {
		return grades.NewResolver(grades.DefaultMixedClasses()), nil
	}
	classes, err := grades.LoadMixedClasses(path)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to load mixed classes from "+path, err)
	}
	return grades.NewResolver(classes), nil
}

// Run executes the registered steps under a fresh run ID
func (a *Application) Run(ctx context.Context) (*operations.OperationState, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	runID := infrastructure.GetTraceID(ctx)

	a.Logger.InfoContext(ctx, "Run starting",
		slog.String("version", contracts.Version),
		slog.String("school_year", a.Paths.SchoolYear),
		slog.String("raw_dir", a.Paths.RawDir),
		slog.String("output_dir", a.Paths.OutputDir))

	state := operations.NewOperationState(runID)
	err := a.Manager.Execute(ctx, state)
	if err != nil {
		a.Logger.ErrorContext(ctx, "Run failed",
			slog.String("error", err.Error()),
			slog.Bool("recoverable", apperrors.IsRecoverable(err)))
		return state, err
	}

	a.Logger.InfoContext(ctx, "Run complete",
		slog.Duration("duration", time.Since(state.StartTime)))
	return state, nil
}

// Stop writes the metrics file and flushes telemetry
func (a *Application) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	a.System.Record(ctx)

	var errs []error
	if err := a.OTelProviders.WriteMetrics(a.Paths.ResolvePath(a.Config.Telemetry.MetricsFile)); err != nil {
		errs = append(errs, err)
	}
	if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	if err := a.closeTraceFile(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *Application) closeTraceFile() error {
	if a.traceFile == nil {
		return nil
	}
	err := a.traceFile.Close()
	a.traceFile = nil
	return err
}

// Main is the body of every step command: it parses args, loads the
// configuration, runs steps and returns the process exit code
func Main(name string, steps []string, args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stdout)
	inDir := fs.String("in", "", "directory of raw attendance exports (defaults to data/raw/franvaro/<year>)")
	outDir := fs.String("out", "", "output directory (defaults to data/output/<year>)")
	year := fs.String("year", "", "school year, e.g. 2025-2026 (defaults to the configured year)")
	version := fs.Bool("version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stdout, "Fel i konfigurationen: %v\n", err)
		return 1
	}

	a, err := NewApplication(cfg, Options{
		Name:   name,
		Steps:  steps,
		InDir:  *inDir,
		OutDir: *outDir,
		Year:   *year,
		Stdout: stdout,
	})
	if err != nil {
		fmt.Fprintf(stdout, "Kunde inte starta %s: %v\n", name, err)
		return 1
	}
	defer infrastructure.CloseLogFile()

	ctx := context.Background()
	_, runErr := a.Run(ctx)
	if err := a.Stop(ctx); err != nil {
		a.Logger.Warn("Failed to flush telemetry", slog.String("error", err.Error()))
	}
	if runErr != nil {
		fmt.Fprintf(stdout, "Fel: %v\n", runErr)
		return 1
	}
	return 0
}
