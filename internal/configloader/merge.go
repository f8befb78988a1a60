package configloader

import (
	"maps"

	"github.com/yaklabco/mdspan/pkg/config"
)

// merge layers override onto a copy of base. Strings and jobs replace when
// set, the ignore list replaces when non-nil, classes merge key by key, and
// the boolean switches can only be turned on by a later layer.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Mode != "" {
		result.Mode = override.Mode
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.DetectLanguages != nil {
		detect := *override.DetectLanguages
		result.DetectLanguages = &detect
	}

	if override.FollowSymlinks {
		result.FollowSymlinks = true
	}
	if override.Write {
		result.Write = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	result.Classes = mergeClasses(base.Classes, override.Classes)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return result
}

// mergeClasses merges class overrides key by key.
func mergeClasses(base, override map[string]string) map[string]string {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]string, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// MergeAll folds configs left to right; later ones win.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
