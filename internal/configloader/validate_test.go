package configloader

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdspan/pkg/config"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cfg       *config.Config
		wantField string
	}{
		{"defaults are valid", config.NewConfig(), ""},
		{"empty is valid", &config.Config{}, ""},
		{"nil is valid", nil, ""},
		{"flavor", &config.Config{Flavor: "mmd"}, "flavor"},
		{"mode", &config.Config{Mode: "fancy"}, "mode"},
		{"format", &config.Config{Format: "table"}, "format"},
		{"color", &config.Config{Color: "rainbow"}, "color"},
		{"jobs", &config.Config{Jobs: -1}, "jobs"},
		{"backup mode", &config.Config{Backups: config.BackupsConfig{Mode: "xdg"}}, "backups.mode"},
		{"unknown kind", &config.Config{Classes: map[string]string{"Nope": "x"}}, "classes.Nope"},
		{"undecorated kind", &config.Config{Classes: map[string]string{"ListMark": "x"}}, "classes.ListMark"},
		{"glob", &config.Config{Ignore: []string{"ok/**", "[bad"}}, "ignore[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := Validate(tt.cfg)
			if tt.wantField == "" {
				assert.True(t, result.Valid(), result.AllMessages())
				return
			}
			if assert.Len(t, result.Errors, 1) {
				assert.Equal(t, tt.wantField, result.Errors[0].Field)
			}
		})
	}
}

func TestValidate_RedundantClassWarns(t *testing.T) {
	t.Parallel()

	result := Validate(&config.Config{Classes: map[string]string{"ATXHeading2": "cm-h2", "Emphasis": "it"}})
	assert.True(t, result.Valid())
	assert.True(t, result.HasWarnings())
	assert.Len(t, result.Warnings, 1)
	assert.Equal(t, "classes.ATXHeading2", result.Warnings[0].Field)
}

func TestValidateWithFile(t *testing.T) {
	t.Parallel()

	result := ValidateWithFile(&config.Config{Mode: "x"}, "/tmp/.mdspan.yml")
	assert.Equal(t, "/tmp/.mdspan.yml: mode: invalid mode \"x\"; must be one of: decorate, hide", result.Errors[0].Error())
	assert.Equal(t, []string{"error: " + result.Errors[0].Error()}, result.AllMessages())
}

func TestIsValidBackupMode(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidBackupMode("sidecar"))
	assert.True(t, IsValidBackupMode("none"))
	assert.False(t, IsValidBackupMode("xdg"))
}
