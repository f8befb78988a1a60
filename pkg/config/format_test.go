package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdspan/pkg/annotate"
	"github.com/yaklabco/mdspan/pkg/config"
	"github.com/yaklabco/mdspan/pkg/mdast"
)

func TestOutputFormat_IsValid(t *testing.T) {
	t.Parallel()

	for _, format := range config.OutputFormats() {
		assert.True(t, format.IsValid(), format)
	}
	assert.False(t, config.OutputFormat("sarif").IsValid())
	assert.False(t, config.OutputFormat("").IsValid())
}

func TestFlavor_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, config.FlavorGFM.IsValid())
	assert.True(t, config.FlavorCommonMark.IsValid())
	assert.False(t, config.Flavor("markdown").IsValid())
}

func TestIsValidColor(t *testing.T) {
	t.Parallel()

	assert.True(t, config.IsValidColor("auto"))
	assert.True(t, config.IsValidColor("always"))
	assert.True(t, config.IsValidColor("never"))
	assert.False(t, config.IsValidColor("sometimes"))
}

func TestConfig_Accessors(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.True(t, cfg.LanguageDetection())
	assert.False(t, cfg.BackupsEnabled())

	mode, err := cfg.AnnotateMode()
	require.NoError(t, err)
	assert.Equal(t, annotate.ModeDecorate, mode)

	cfg.Mode = "hide"
	mode, err = cfg.AnnotateMode()
	require.NoError(t, err)
	assert.Equal(t, annotate.ModeDecorateHide, mode)

	cfg.Mode = "bogus"
	_, err = cfg.AnnotateMode()
	require.ErrorIs(t, err, annotate.ErrUnknownMode)

	off := false
	cfg.DetectLanguages = &off
	assert.False(t, cfg.LanguageDetection())

	cfg.Classes = map[string]string{"emphasis": "it"}
	table, err := cfg.ClassTable()
	require.NoError(t, err)
	assert.Equal(t, "it", table[mdast.KindEmphasis])

	cfg.Classes = map[string]string{"Paragraph": "p"}
	_, err = cfg.ClassTable()
	require.ErrorIs(t, err, annotate.ErrUnknownKind)

	cfg.Backups.Enabled = true
	assert.True(t, cfg.BackupsEnabled())
	cfg.NoBackups = true
	assert.False(t, cfg.BackupsEnabled())

	var nilCfg *config.Config
	assert.True(t, nilCfg.LanguageDetection())
}
