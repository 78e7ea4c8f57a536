// internal/pkg/config/validators.go
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	validSources      = map[string]bool{"evdev": true, "lines": true}
	validPrinterModes = map[string]bool{"direct": true, "queue": true, "off": true}
	validSecrets      = map[string]bool{"env": true, "aws": true}
)

// BasicValidator checks settings every environment needs
type BasicValidator struct{}

// Validate reports every problem it finds, not only the first
func (v *BasicValidator) Validate(cfg *Config) error {
	errs := []error{checkRequired(reflect.ValueOf(cfg).Elem(), "")}

	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(cfg.Database.MaxConnections >= cfg.Database.MinConnections,
		"database max connections must be >= min connections")
	check(validSecrets[cfg.Database.SecretsProvider],
		"unknown secrets provider %q", cfg.Database.SecretsProvider)
	check(validSources[cfg.Scanner.Source],
		"unknown scanner source %q", cfg.Scanner.Source)
	check(cfg.Scanner.IdleTimeout > 0,
		"scanner idle timeout must be positive")
	check(validPrinterModes[cfg.Printer.Mode],
		"unknown printer mode %q", cfg.Printer.Mode)
	check(cfg.Printer.Threshold >= 0 && cfg.Printer.Threshold <= 255,
		"printer threshold must be within 0..255")
	check(!cfg.Lookup.Enabled || cfg.Lookup.RequestsPerMinute > 0,
		"lookup requests per minute must be positive")
	check(cfg.Export.Retention >= 0,
		"export retention must not be negative")
	check(!cfg.Redis.Enabled || cfg.Redis.PoolSize > 0,
		"redis pool size must be positive")

	return errors.Join(errs...)
}

// ProductionValidator adds the checks that only matter on a real pantry
type ProductionValidator struct{}

// Validate rejects unsafe production settings
func (v *ProductionValidator) Validate(cfg *Config) error {
	switch {
	case strings.Contains(cfg.Database.URL, "sslmode=disable"):
		return errors.New("database SSL must be enabled in production")
	case cfg.Printer.Mode == "queue" && !cfg.Redis.Enabled:
		return errors.New("queued printing requires redis in production")
	case cfg.AWS.S3Bucket != "" && cfg.AWS.UsePathStyle && cfg.AWS.S3Endpoint == "":
		return errors.New("path style S3 addressing requires a custom endpoint")
	}
	return nil
}

// checkRequired walks nested config structs and reports fields tagged
// required:"true" that are empty or still hold a MISSING_ placeholder
func checkRequired(v reflect.Value, path string) error {
	var errs []error
	for i := 0; i < v.NumField(); i++ {
		field, meta := v.Field(i), v.Type().Field(i)
		name := meta.Name
		if path != "" {
			name = path + "." + name
		}

		if field.Kind() == reflect.Struct {
			errs = append(errs, checkRequired(field, name))
			continue
		}
		if meta.Tag.Get("required") == "true" && unset(field) {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingRequiredConfig, name))
		}
	}
	return errors.Join(errs...)
}

func unset(v reflect.Value) bool {
	if v.Kind() == reflect.String {
		return v.String() == "" || strings.HasPrefix(v.String(), "MISSING_")
	}
	return v.IsZero()
}
