// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Data     DataConfig
	Pipeline PipelineConfig
	Logging  LoggingConfig
}

// DataConfig holds the data directory layout.
type DataConfig struct {
	// InboxDir is where input files are discovered by fixed name (must exist)
	InboxDir string `env:"DATA_INBOX_DIR" default:"data/data_files/incoming"`

	// ProcessedDir receives inputs after ingestion (recreated every run)
	ProcessedDir string `env:"DATA_PROCESSED_DIR" default:"data/data_files/processed"`

	// IngestedDir receives accepted rows (recreated every run)
	IngestedDir string `env:"DATA_INGESTED_DIR" default:"data/data_files/ingested"`

	// RejectedDir receives rejected rows (recreated every run)
	RejectedDir string `env:"DATA_REJECTED_DIR" default:"data/data_files/rejected"`
}

// PipelineConfig holds processing settings.
type PipelineConfig struct {
	// SourcesFile is an optional YAML file replacing the built-in sources
	SourcesFile string `env:"SOURCES_FILE"`

	// NullableIntPolicy is what an int column with missing values becomes: float or int (default: float)
	NullableIntPolicy string `env:"NULLABLE_INT_POLICY" default:"float"`

	// ReportPath is an optional HTML run report destination
	ReportPath string `env:"REPORT_PATH" envAlt:"RUN_REPORT_PATH"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
