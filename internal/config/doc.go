// Package config provides centralized configuration and path management for
// the attendance report tools.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority), optionally from a .env file
//	2. A YAML configuration file (config.yaml, configs/config.yaml or
//	   FRANVARO_CONFIG_FILE)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern FRANVARO_<SECTION>_<FIELD>:
//
//	FRANVARO_PATHS_SCHOOL_YEAR=2025-2026
//	FRANVARO_PATHS_ROOT_DIR=/srv/franvaro
//	FRANVARO_PIPELINE_HEADER_SKIP_ROWS=4
//	FRANVARO_PIPELINE_ABSENCE_THRESHOLD=11
//	FRANVARO_LOGGING_LEVEL=debug
//	FRANVARO_TELEMETRY_METRICS_FILE=logs/franvaro.prom
//
// # Path Management
//
// Paths derives every directory and well-known file of one school year:
//
//	data/raw/franvaro/<year>/   raw exports, one per school
//	data/output/<year>/         franvaro.xlsx, franvaro_rensad_kategoriserad.xlsx,
//	                            franvaro_med_over11.xlsx
//
// # Validation
//
// Configuration is validated at load time with struct tags; the school year
// must be YYYY-YYYY with consecutive years.
package config
