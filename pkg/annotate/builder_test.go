package annotate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdspan/pkg/annotate"
)

func TestBuilder_Add(t *testing.T) {
	t.Parallel()

	builder := annotate.NewBuilder(4)

	require.NoError(t, builder.Add(classSpan(0, 8, "cm-h2")))
	require.NoError(t, builder.Add(hiddenSpan(0, 3)), "equal From is allowed")
	require.NoError(t, builder.Add(classSpan(4, 4, "cm-code-block")), "zero-length is allowed")
	require.NoError(t, builder.Add(classSpan(5, 6, "cm-em")))

	assert.Equal(t, 4, builder.Len())
	assert.Equal(t, []annotate.Span{
		classSpan(0, 8, "cm-h2"),
		hiddenSpan(0, 3),
		classSpan(4, 4, "cm-code-block"),
		classSpan(5, 6, "cm-em"),
	}, builder.Spans())
}

func TestBuilder_OutOfOrderFailsFast(t *testing.T) {
	t.Parallel()

	builder := annotate.NewBuilder(0)
	require.NoError(t, builder.Add(classSpan(10, 20, "cm-strong")))

	err := builder.Add(classSpan(5, 30, "cm-em"))
	require.ErrorIs(t, err, annotate.ErrOutOfOrder)
	assert.Contains(t, err.Error(), "[5,30)")

	// The rejected span is not kept and nothing is reordered.
	assert.Equal(t, []annotate.Span{classSpan(10, 20, "cm-strong")}, builder.Spans())
}

func TestBuilder_InvertedSpan(t *testing.T) {
	t.Parallel()

	builder := annotate.NewBuilder(0)
	require.ErrorIs(t, builder.Add(classSpan(9, 3, "cm-em")), annotate.ErrInvalidSpan)
	assert.Equal(t, 0, builder.Len())
}

func TestBuilder_SpansIsCopy(t *testing.T) {
	t.Parallel()

	var builder annotate.Builder
	assert.Equal(t, []annotate.Span{}, builder.Spans())

	require.NoError(t, builder.Add(classSpan(0, 1, "cm-em")))

	spans := builder.Spans()
	spans[0].Class = "changed"
	assert.Equal(t, "cm-em", builder.Spans()[0].Class)
}
