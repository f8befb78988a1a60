// Package config defines the configuration types for mdspan.
// These are plain data structures; discovery and merging live in the loader.
package config

import (
	"fmt"

	"github.com/yaklabco/mdspan/pkg/annotate"
)

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// OutputFormat specifies how annotation results are written.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatHTML    OutputFormat = "html"
	FormatPreview OutputFormat = "preview"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Backup modes.
const (
	BackupModeSidecar = "sidecar"
	BackupModeNone    = "none"
)

// BackupsConfig controls backups of rendered files replaced by --write.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode" json:"mode"`
}

// Config is the root configuration structure for mdspan.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `mapstructure:"flavor" yaml:"flavor" json:"flavor"`

	// Mode is the annotation mode ("decorate" or "hide").
	Mode string `mapstructure:"mode" yaml:"mode" json:"mode"`

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"format" yaml:"format" json:"format"`

	// Color is "auto", "always" or "never".
	Color string `mapstructure:"color" yaml:"color" json:"color"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty" json:"ignore,omitempty"`

	// FollowSymlinks traverses symlinked directories during discovery.
	FollowSymlinks bool `mapstructure:"follow_symlinks" yaml:"follow_symlinks" json:"follow_symlinks"`

	// Jobs is the number of parallel workers. 0 means one per CPU.
	Jobs int `mapstructure:"jobs" yaml:"jobs" json:"jobs"`

	// DetectLanguages guesses the language of code blocks without an info
	// string. Unset means enabled.
	DetectLanguages *bool `mapstructure:"detect_languages" yaml:"detect_languages,omitempty" json:"detect_languages,omitempty"`

	// Classes overrides span classes, keyed by node kind name.
	Classes map[string]string `mapstructure:"classes" yaml:"classes,omitempty" json:"classes,omitempty"`

	// Backups configures backups of replaced output files.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups" json:"backups"`

	// CLI-level options (not persisted to config files).

	// Write stores rendered HTML next to each source file.
	Write bool `mapstructure:"-" yaml:"-" json:"-"`

	// NoBackups disables backups for this run.
	NoBackups bool `mapstructure:"-" yaml:"-" json:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor: FlavorGFM,
		Mode:   annotate.ModeDecorate.String(),
		Format: FormatText,
		Color:  ColorAuto,
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    BackupModeSidecar,
		},
		Jobs: 0,
	}
}

// LanguageDetection reports whether code-block language guessing is on.
func (c *Config) LanguageDetection() bool {
	return c == nil || c.DetectLanguages == nil || *c.DetectLanguages
}

// AnnotateMode parses the configured mode.
func (c *Config) AnnotateMode() (annotate.Mode, error) {
	if c == nil {
		return annotate.ModeDecorate, nil
	}
	mode, err := annotate.ParseMode(c.Mode)
	if err != nil {
		return 0, fmt.Errorf("mode: %w", err)
	}
	return mode, nil
}

// ClassTable parses the class overrides.
func (c *Config) ClassTable() (annotate.ClassTable, error) {
	if c == nil {
		return nil, nil
	}
	table, err := annotate.ParseClassTable(c.Classes)
	if err != nil {
		return nil, fmt.Errorf("classes: %w", err)
	}
	return table, nil
}

// BackupsEnabled reports whether replaced output files are backed up.
func (c *Config) BackupsEnabled() bool {
	return c != nil && c.Backups.Enabled && !c.NoBackups && c.Backups.Mode != BackupModeNone
}
