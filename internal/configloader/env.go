package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/mdspan/pkg/config"
)

// envVarPrefix prefixes every mdspan environment variable.
const envVarPrefix = "MDSPAN_"

// envBinding ties one environment variable to the config field it sets.
type envBinding struct {
	suffix string
	field  string
	help   string
	set    func(cfg *config.Config, value string) error
}

func stringVar(set func(*config.Config, string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, value)
		return nil
	}
}

func boolVar(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		set(cfg, b)
		return nil
	}
}

var envBindings = []envBinding{
	{"FLAVOR", "flavor", "Markdown flavor: commonmark or gfm",
		stringVar(func(c *config.Config, v string) { c.Flavor = config.Flavor(v) })},
	{"MODE", "mode", "Annotation mode: decorate or hide",
		stringVar(func(c *config.Config, v string) { c.Mode = v })},
	{"FORMAT", "format", "Output format: text, json, yaml, html, or preview",
		stringVar(func(c *config.Config, v string) { c.Format = config.OutputFormat(v) })},
	{"COLOR", "color", "Color output: auto, always, or never",
		stringVar(func(c *config.Config, v string) { c.Color = v })},
	{"JOBS", "jobs", "Number of parallel workers (0 = auto)",
		func(c *config.Config, v string) error {
			jobs, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid integer %q", v)
			}
			c.Jobs = jobs
			return nil
		}},
	{"IGNORE", "ignore", "Comma-separated list of ignore patterns",
		stringVar(func(c *config.Config, v string) { c.Ignore = splitList(v) })},
	{"FOLLOW_SYMLINKS", "follow_symlinks", "Traverse symlinked directories: true or false",
		boolVar(func(c *config.Config, v bool) { c.FollowSymlinks = v })},
	{"DETECT_LANGUAGES", "detect_languages", "Guess code block languages: true or false",
		boolVar(func(c *config.Config, v bool) { c.DetectLanguages = &v })},
	{"BACKUPS_ENABLED", "backups.enabled", "Back up replaced output files: true or false",
		boolVar(func(c *config.Config, v bool) { c.Backups.Enabled = v })},
	{"BACKUPS_MODE", "backups.mode", "Backup mode: sidecar or none",
		stringVar(func(c *config.Config, v string) { c.Backups.Mode = v })},
	{"NO_BACKUPS", "no_backups", "Disable backups: true or false",
		boolVar(func(c *config.Config, v bool) { c.NoBackups = v })},
}

// LoadFromEnv applies the MDSPAN_* environment variables to cfg. Unset and
// empty variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, binding := range envBindings {
		name := envVarPrefix + binding.suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := binding.set(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// splitList splits a comma-separated value, dropping blank elements.
func splitList(value string) []string {
	var items []string
	for _, part := range strings.Split(value, ",") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// GetEnvVarName returns the environment variable that sets a config field,
// or "" if none does.
func GetEnvVarName(field string) string {
	for _, binding := range envBindings {
		if binding.field == field {
			return envVarPrefix + binding.suffix
		}
	}
	return ""
}

// EnvVar describes a supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns every supported environment variable, sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envBindings))
	for _, binding := range envBindings {
		vars = append(vars, EnvVar{Name: envVarPrefix + binding.suffix, Description: binding.help})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}
