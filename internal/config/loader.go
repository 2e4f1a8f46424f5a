package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

var fileModeType = reflect.TypeOf(os.FileMode(0))

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

// loadStruct recursively populates struct fields from environment variables.
func loadStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

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
		defaultVal := field.Tag.Get("default")
		required := field.Tag.Get("required") == "true"

		if envName == "" {
			continue
		}

		value := os.Getenv(envName)
		if value == "" {
			if required {
				return fmt.Errorf("required environment variable %s is not set", envName)
			}
			value = defaultVal
		}

		if value == "" {
			continue
		}

		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	// File modes are written the way chmod takes them: octal.
	if field.Type() == fileModeType {
		m, err := strconv.ParseUint(strings.TrimSpace(value), 8, 32)
		if err != nil {
			return fmt.Errorf("invalid octal mode: %w", err)
		}
		field.SetUint(m)
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(i)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Loader.Policy) == "" {
		errs = append(errs, "MOVIES_POLICY must not be empty")
	}

	if c.Files.Ext != "" && !strings.HasPrefix(c.Files.Ext, ".") {
		errs = append(errs, fmt.Sprintf("MOVIES_FILE_EXT (%q) must start with a dot", c.Files.Ext))
	}
	if c.Files.MaxNameLen <= 0 {
		errs = append(errs, "MOVIES_MAX_FILENAME must be positive")
	}

	owner := strings.TrimSpace(c.Output.OwnerID)
	if owner == "" {
		errs = append(errs, "MOVIES_OWNER_ID must not be empty")
	} else if strings.ContainsAny(owner, `/\`) || strings.ContainsFunc(owner, isSpace) {
		errs = append(errs, fmt.Sprintf("MOVIES_OWNER_ID (%q) must not contain path separators or whitespace", c.Output.OwnerID))
	}
	if c.Output.DirPerm&^os.ModePerm != 0 || c.Output.DirPerm == 0 {
		errs = append(errs, fmt.Sprintf("MOVIES_DIR_PERM (%#o) must be a non-zero permission in 0-0777", uint32(c.Output.DirPerm)))
	}
	if c.Output.FilePerm&^os.ModePerm != 0 || c.Output.FilePerm == 0 {
		errs = append(errs, fmt.Sprintf("MOVIES_FILE_PERM (%#o) must be a non-zero permission in 0-0777", uint32(c.Output.FilePerm)))
	}
	if c.Output.SuffixMax < 0 {
		errs = append(errs, "MOVIES_SUFFIX_MAX must be non-negative")
	}

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

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
