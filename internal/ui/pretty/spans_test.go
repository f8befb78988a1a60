package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdspan/internal/ui/pretty"
	"github.com/yaklabco/mdspan/pkg/annotate"
	"github.com/yaklabco/mdspan/pkg/mdast"
)

func TestFormatSpan(t *testing.T) {
	t.Parallel()

	doc := mdast.NewDocument("a.md", []byte("## Title\n\n```go\nx\n```\n"))
	styles := pretty.NewStyles(false)

	assert.Equal(t, "  1:1-1:9  cm-h2  \"## Title\"\n",
		styles.FormatSpan(doc, annotate.Span{From: 0, To: 8, Class: "cm-h2"}))
	assert.Equal(t, "  1:1-1:4  hidden  \"## \"\n",
		styles.FormatSpan(doc, annotate.Span{From: 0, To: 3, Hidden: true}))
	assert.Equal(t, "  3:1-5:4  cm-code [go]  \"```go\\nx\\n```\"\n",
		styles.FormatSpan(doc, annotate.Span{From: 10, To: 21, Class: "cm-code", Lang: "go"}))
}

func TestExcerpt(t *testing.T) {
	t.Parallel()

	content := []byte(strings.Repeat("é", 50))

	got := pretty.Excerpt(content, 0, len(content))
	assert.Equal(t, `"`+strings.Repeat("é", 39)+`…"`, got)

	assert.Equal(t, `""`, pretty.Excerpt(content, 10, 5), "inverted range")
	assert.Equal(t, `"é"`, pretty.Excerpt(content, 98, 200), "clamped to content")
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, "a.md (no spans)", styles.FormatFileHeader("a.md", 0))
	assert.Equal(t, "a.md (1 span)", styles.FormatFileHeader("a.md", 1))
	assert.Equal(t, "a.md (7 spans)", styles.FormatFileHeader("a.md", 7))
}

func TestFormatRanges(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0:4, 10:12", pretty.FormatRanges([]annotate.Range{{From: 0, To: 4}, {From: 10, To: 12}}))
	assert.Empty(t, pretty.FormatRanges(nil))
}
