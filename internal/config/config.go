package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"franvarocli/internal/schoolyear"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Pipeline  PipelineConfig  `yaml:"pipeline" envconfig:"PIPELINE"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"file" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/franvaro.log" validate:"required"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	// RootDir is the project root; empty means the executable's directory.
	RootDir    string `yaml:"root_dir" envconfig:"ROOT_DIR"`
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data" validate:"required"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs" validate:"required"`
	SchoolYear string `yaml:"school_year" envconfig:"SCHOOL_YEAR" default:"2025-2026" validate:"required,schoolyear"`
}

// PipelineConfig contains the knobs of the merge and report steps
type PipelineConfig struct {
	// HeaderSkipRows is the number of leading rows dropped from every export
	// after the first one.
	HeaderSkipRows   int     `yaml:"header_skip_rows" envconfig:"HEADER_SKIP_ROWS" default:"4" validate:"gte=0,lte=100"`
	AbsenceThreshold float64 `yaml:"absence_threshold" envconfig:"ABSENCE_THRESHOLD" default:"11" validate:"gte=0,lte=100"`
	MixedClassesFile string  `yaml:"mixed_classes_file" envconfig:"MIXED_CLASSES_FILE"`
}

// TelemetryConfig contains tracing and metrics output configuration
type TelemetryConfig struct {
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" default:"none" validate:"oneof=none stdout"`
	// TraceFile receives the stdout exporter's spans instead of stdout.
	TraceFile string `yaml:"trace_file" envconfig:"TRACE_FILE"`
	// MetricsFile is a Prometheus textfile written at the end of each run.
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Load loads configuration from .env, environment variables and config file.
// Environment variables take precedence over the file.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile := getConfigFilePath(); configFile != "" {
		fileConfig, keys, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, keys, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadDotEnv loads .env from the working directory when present
func loadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	return godotenv.Load()
}

// numericKeys records which numeric keys a config file sets, so an explicit
// zero is told apart from an absent key.
type numericKeys struct {
	Pipeline struct {
		HeaderSkipRows   *int     `yaml:"header_skip_rows"`
		AbsenceThreshold *float64 `yaml:"absence_threshold"`
	} `yaml:"pipeline"`
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, numericKeys, error) {
	var keys numericKeys

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, keys, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, keys, err
	}
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, keys, err
	}

	return &cfg, keys, nil
}

// mergeConfigs overlays file values on fields whose environment variable is
// not set. Strings apply when non-empty, numbers when the key is present.
func mergeConfigs(fileConfig Config, keys numericKeys, envConfig Config) Config {
	str := func(key string, dst *string, src string) {
		if src != "" && !envSet(key) {
			*dst = src
		}
	}

	str("LOGGING_LEVEL", &envConfig.Logging.Level, fileConfig.Logging.Level)
	str("LOGGING_FORMAT", &envConfig.Logging.Format, fileConfig.Logging.Format)
	str("LOGGING_OUTPUT", &envConfig.Logging.Output, fileConfig.Logging.Output)
	str("LOGGING_FILE_PATH", &envConfig.Logging.FilePath, fileConfig.Logging.FilePath)

	str("PATHS_ROOT_DIR", &envConfig.Paths.RootDir, fileConfig.Paths.RootDir)
	str("PATHS_DATA_DIR", &envConfig.Paths.DataDir, fileConfig.Paths.DataDir)
	str("PATHS_LOGS_DIR", &envConfig.Paths.LogsDir, fileConfig.Paths.LogsDir)
	str("PATHS_SCHOOL_YEAR", &envConfig.Paths.SchoolYear, fileConfig.Paths.SchoolYear)

	if keys.Pipeline.HeaderSkipRows != nil && !envSet("PIPELINE_HEADER_SKIP_ROWS") {
		envConfig.Pipeline.HeaderSkipRows = *keys.Pipeline.HeaderSkipRows
	}
	if keys.Pipeline.AbsenceThreshold != nil && !envSet("PIPELINE_ABSENCE_THRESHOLD") {
		envConfig.Pipeline.AbsenceThreshold = *keys.Pipeline.AbsenceThreshold
	}
	str("PIPELINE_MIXED_CLASSES_FILE", &envConfig.Pipeline.MixedClassesFile, fileConfig.Pipeline.MixedClassesFile)

	str("TELEMETRY_TRACE_EXPORTER", &envConfig.Telemetry.TraceExporter, fileConfig.Telemetry.TraceExporter)
	str("TELEMETRY_TRACE_FILE", &envConfig.Telemetry.TraceFile, fileConfig.Telemetry.TraceFile)
	str("TELEMETRY_METRICS_FILE", &envConfig.Telemetry.MetricsFile, fileConfig.Telemetry.MetricsFile)

	return envConfig
}

func envSet(key string) bool {
	_, ok := os.LookupEnv(EnvPrefix + "_" + key)
	return ok
}

// Validate checks the configuration and normalizes the logging settings
func (c *Config) Validate() error {
	// Log output is always JSON.
	c.Logging.Format = "json"

	if err := newValidator().Struct(c); err != nil {
		var msgs []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				msgs = append(msgs, formatValidationError(fe))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("schoolyear", func(fl validator.FieldLevel) bool {
		return schoolyear.IsValid(fl.Field().String())
	})
	// Use YAML names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func formatValidationError(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "schoolyear":
		return fmt.Sprintf("%s must be a school year like 2025-2026, got %q", field, fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if explicit := os.Getenv(EnvPrefix + "_CONFIG_FILE"); explicit != "" {
		return explicit
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "file",
			FilePath: "logs/franvaro.log",
		},
		Paths: PathsConfig{
			DataDir:    DefaultDataDir,
			LogsDir:    DefaultLogsDir,
			SchoolYear: DefaultSchoolYear,
		},
		Pipeline: PipelineConfig{
			HeaderSkipRows:   DefaultHeaderSkipRows,
			AbsenceThreshold: DefaultAbsenceThreshold,
		},
		Telemetry: TelemetryConfig{
			TraceExporter: "none",
		},
	}
}
