package annotate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdspan/pkg/annotate"
	"github.com/yaklabco/mdspan/pkg/mdast"
)

func TestDefaultClasses(t *testing.T) {
	t.Parallel()

	table := annotate.DefaultClasses()

	assert.Len(t, table, 21)
	assert.Equal(t, "cm-h4", table[mdast.KindSetextHeading4])
	assert.Equal(t, "cm-list-1", table[mdast.KindBulletList])
	assert.NotContains(t, table, mdast.KindParagraph)
	assert.NotContains(t, table, mdast.KindHeaderMark)

	// Each call returns an independent table.
	table[mdast.KindEmphasis] = "changed"
	assert.Equal(t, "cm-em", annotate.DefaultClasses()[mdast.KindEmphasis])
}

func TestClassTable_Class(t *testing.T) {
	t.Parallel()

	var empty annotate.ClassTable
	class, ok := empty.Class(mdast.KindStrikethrough)
	assert.True(t, ok)
	assert.Equal(t, "cm-strikethrough", class)

	_, ok = empty.Class(mdast.KindText)
	assert.False(t, ok)

	table := annotate.ClassTable{mdast.KindBlockquote: "quote", mdast.KindInlineCode: ""}

	class, ok = table.Class(mdast.KindBlockquote)
	assert.True(t, ok)
	assert.Equal(t, "quote", class)

	_, ok = table.Class(mdast.KindInlineCode)
	assert.False(t, ok, "empty override disables decoration")
}

func TestParseClassTable(t *testing.T) {
	t.Parallel()

	table, err := annotate.ParseClassTable(map[string]string{
		"StrongEmphasis": "md-bold",
		"atxheading1":    "md-title",
	})
	require.NoError(t, err)
	assert.Equal(t, annotate.ClassTable{
		mdast.KindStrongEmphasis: "md-bold",
		mdast.KindATXHeading1:    "md-title",
	}, table)

	table, err = annotate.ParseClassTable(nil)
	require.NoError(t, err)
	assert.Nil(t, table)

	_, err = annotate.ParseClassTable(map[string]string{"Superscript": "x"})
	require.ErrorIs(t, err, annotate.ErrUnknownKind)

	_, err = annotate.ParseClassTable(map[string]string{"Paragraph": "x"})
	require.ErrorIs(t, err, annotate.ErrUnknownKind)
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want annotate.Mode
	}{
		{"", annotate.ModeDecorate},
		{"decorate", annotate.ModeDecorate},
		{"Hide", annotate.ModeDecorateHide},
		{"decorate+hide", annotate.ModeDecorateHide},
		{"live", annotate.ModeDecorateHide},
	}

	for _, tt := range tests {
		mode, err := annotate.ParseMode(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, mode, tt.name)
	}

	_, err := annotate.ParseMode("preview")
	require.ErrorIs(t, err, annotate.ErrUnknownMode)

	assert.Equal(t, "decorate", annotate.ModeDecorate.String())
	assert.Equal(t, "hide", annotate.ModeDecorateHide.String())
}
