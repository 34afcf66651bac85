package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
)

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
// Returns an error if required values are missing or validation fails.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// loadStruct walks v and fills every field tagged env from the environment.
//
// Tags:
//
//	env:"NAME"        primary variable
//	envAlt:"NAME"     fallback variable, read when the primary is unset
//	default:"value"   used when neither variable is set
//	required:"true"   fail instead of using a default
func loadStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field, fieldVal := t.Field(i), v.Field(i)
		if !fieldVal.CanSet() {
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			if err := loadStruct(fieldVal); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}

		value, ok := lookupEnv(envName, field.Tag.Get("envAlt"))
		if !ok {
			if field.Tag.Get("required") == "true" {
				return fmt.Errorf("required environment variable %s is not set", envName)
			}
			value = field.Tag.Get("default")
		}

		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("%s: %w", envName, err)
		}
	}

	return nil
}

// lookupEnv returns the first non-blank value among the named variables.
func lookupEnv(names ...string) (string, bool) {
	for _, name := range names {
		if name == "" {
			continue
		}
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v, true
		}
	}
	return "", false
}

// setField assigns value to a string field. Every setting is a path, a file
// name or a keyword, so other kinds are a programming error.
func setField(field reflect.Value, value string) error {
	if field.Kind() != reflect.String {
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
	field.SetString(value)
	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Directory validation
	dirs := []struct {
		env  string
		path string
	}{
		{"DATA_INBOX_DIR", c.Data.InboxDir},
		{"DATA_PROCESSED_DIR", c.Data.ProcessedDir},
		{"DATA_INGESTED_DIR", c.Data.IngestedDir},
		{"DATA_REJECTED_DIR", c.Data.RejectedDir},
	}
	seen := make(map[string]string, len(dirs))
	for _, d := range dirs {
		if strings.TrimSpace(d.path) == "" {
			errs = append(errs, fmt.Sprintf("%s must not be empty", d.env))
			continue
		}
		clean := filepath.Clean(d.path)
		if other, dup := seen[clean]; dup {
			errs = append(errs, fmt.Sprintf("%s and %s must be different directories", other, d.env))
		}
		seen[clean] = d.env
	}

	// Pipeline validation
	validPolicies := map[string]bool{"float": true, "int": true}
	if !validPolicies[strings.ToLower(c.Pipeline.NullableIntPolicy)] {
		errs = append(errs, fmt.Sprintf("NULLABLE_INT_POLICY (%q) must be one of: float, int", c.Pipeline.NullableIntPolicy))
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a compact representation of the config for logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Data: {Inbox: %q, Processed: %q, Ingested: %q, Rejected: %q}, ",
		c.Data.InboxDir, c.Data.ProcessedDir, c.Data.IngestedDir, c.Data.RejectedDir))
	b.WriteString(fmt.Sprintf("Pipeline: {SourcesFile: %q, NullableIntPolicy: %q, ReportPath: %q}, ",
		c.Pipeline.SourcesFile, c.Pipeline.NullableIntPolicy, c.Pipeline.ReportPath))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
