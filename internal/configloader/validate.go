package configloader

import (
	"errors"
	"fmt"
	"sort"
	
	"github.com/yaklabco/mdspan/pkg/annotate"
	"github.com/yaklabco/mdspan/pkg/config"
	"github.com/yaklabco/mdspan/pkg/mdast"
	"github.com/yaklabco/mdspan/pkg/runner"
)

// ValidationError is one problem with a configuration value. FilePath
// names the file it came from, or "$MDSPAN_*" for a variable, when known.
type ValidationError struct {
	Field    string // e.g. "classes.Emphasis"
	Value    any
	Message  string
	FilePath string
}

// Error renders "file: field: message", leaving out unknown parts.
func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.FilePath != "" {
		msg = e.FilePath + ": " + msg
	}
	return msg
}

// ValidationResult collects the errors that reject a configuration and
// the warnings that do not.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

func (r *ValidationResult) Valid() bool       { return len(r.Errors) == 0 }
func (r *ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

// AllMessages lists errors then warnings, each prefixed with its severity.
func (r *ValidationResult) AllMessages() []string {
	var messages []string
	for _, group := range []struct {
		prefix string
		issues []ValidationError
	}{{"error: ", r.Errors}, {"warning: ", r.Warnings}} {
		for _, issue := range group.issues {
			messages = append(messages, group.prefix+issue.Error())
		}
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration for errors and warnings.
// Empty fields are valid; they fall back to lower layers or defaults.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Flavor != "" && !cfg.Flavor.IsValid() {
		result.fail("flavor", cfg.Flavor, "invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor)
	}

	if cfg.Mode != "" {
		if _, err := annotate.ParseMode(cfg.Mode); err != nil {
			result.fail("mode", cfg.Mode, "invalid mode %q; must be one of: decorate, hide", cfg.Mode)
		}
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, json, yaml, html, preview", cfg.Format)
	}

	if cfg.Color != "" && !config.IsValidColor(cfg.Color) {
		result.fail("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}

	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if cfg.Backups.Mode != "" && !IsValidBackupMode(cfg.Backups.Mode) {
		result.fail("backups.mode", cfg.Backups.Mode, "invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}

	validateClasses(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateClasses checks that class overrides name decorated kinds.
func validateClasses(cfg *config.Config, result *ValidationResult) {
	names := make([]string, 0, len(cfg.Classes))
	for name := range cfg.Classes {
		names = append(names, name)
	}
	sort.Strings(names)

	defaults := annotate.DefaultClasses()
	for _, name := range names {
		field := "classes." + name
		class := cfg.Classes[name]

		if _, err := annotate.ParseClassTable(map[string]string{name: class}); err != nil {
			if errors.Is(err, annotate.ErrUnknownKind) {
				result.fail(field, name, "unknown or undecorated node kind %q", name)
				continue
			}
			result.fail(field, name, "%v", err)
			continue
		}

		kind, _ := mdast.ParseKind(name)
		if defaults[kind] == class {
			result.warn(field, class, "override matches the default class %q", class)
		}
	}
}

// validateIgnorePatterns checks that ignore patterns compile the way
// discovery compiles them.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if err := runner.CompileGlob(pattern); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}

// ValidateWithFile validates cfg and attributes every finding to filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for _, issues := range [][]ValidationError{result.Errors, result.Warnings} {
		for i := range issues {
			issues[i].FilePath = filePath
		}
	}
	return result
}

// IsValidBackupMode reports whether mode is sidecar or none.
func IsValidBackupMode(mode string) bool {
	return mode == config.BackupModeSidecar || mode == config.BackupModeNone
}
