package goldmark

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdspan/pkg/annotate"
	"github.com/yaklabco/mdspan/pkg/mdast"
)

// span is a kind with its byte range, for compact expectations.
type span struct {
	kind     mdast.NodeKind
	from, to int
}

func parse(t *testing.T, content string) *mdast.Document {
	t.Helper()

	doc, err := New(FlavorGFM).Parse(context.Background(), "test.md", []byte(content))
	require.NoError(t, err)
	return doc
}

// collect returns the kinds and ranges of all nodes of the given kinds in
// pre-order.
func collect(root *mdast.Node, kinds ...mdast.NodeKind) []span {
	want := make(map[mdast.NodeKind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}

	var out []span
	for _, n := range mdast.FindAll(root, func(n *mdast.Node) bool { return want[n.Kind] }) {
		out = append(out, span{n.Kind, n.From, n.To})
	}
	return out
}

func TestMapper_ATXHeading(t *testing.T) {
	t.Parallel()

	doc := parse(t, "## Title")

	heading := doc.Root.FirstChild
	require.NotNil(t, heading)
	assert.Equal(t, span{mdast.KindATXHeading2, 0, 8}, span{heading.Kind, heading.From, heading.To})
	assert.Equal(t, []span{
		{mdast.KindHeaderMark, 0, 3},
		{mdast.KindText, 3, 8},
	}, collect(heading, mdast.KindHeaderMark, mdast.KindText))
}

func TestMapper_ATXHeadingLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		content string
		kind    mdast.NodeKind
	}{
		{"# H", mdast.KindATXHeading1},
		{"### H", mdast.KindATXHeading3},
		{"###### H", mdast.KindATXHeading6},
	}

	for _, tt := range tests {
		doc := parse(t, tt.content)
		require.NotNil(t, doc.Root.FirstChild, tt.content)
		assert.Equal(t, tt.kind, doc.Root.FirstChild.Kind, tt.content)
		assert.Equal(t, 0, doc.Root.FirstChild.From, tt.content)
		assert.Equal(t, len(tt.content), doc.Root.FirstChild.To, tt.content)
	}
}

func TestMapper_ATXClosingSequence(t *testing.T) {
	t.Parallel()

	doc := parse(t, "# Title ##\n")

	marks := mdast.FindByKind(doc.Root, mdast.KindHeaderMark)
	require.Len(t, marks, 2)
	assert.Equal(t, "# ", string(doc.Text(marks[0])))
	assert.Equal(t, 10, marks[1].To)
	assert.Equal(t, "##", strings.TrimSpace(string(doc.Text(marks[1]))))
}

func TestMapper_SetextHeading(t *testing.T) {
	t.Parallel()

	doc := parse(t, "Title\n=====\n")

	assert.Equal(t, []span{
		{mdast.KindSetextHeading1, 0, 11},
		{mdast.KindText, 0, 5},
		{mdast.KindHeaderMark, 6, 11},
	}, collect(doc.Root, mdast.KindSetextHeading1, mdast.KindHeaderMark, mdast.KindText))
}

func TestMapper_Emphasis(t *testing.T) {
	t.Parallel()

	doc := parse(t, "**bold** and *em* ~~del~~")

	assert.Equal(t, []span{
		{mdast.KindStrongEmphasis, 0, 8},
		{mdast.KindEmphasis, 13, 17},
		{mdast.KindStrikethrough, 18, 25},
	}, collect(doc.Root, mdast.KindStrongEmphasis, mdast.KindEmphasis, mdast.KindStrikethrough))
}

func TestMapper_CodeSpan(t *testing.T) {
	t.Parallel()

	doc := parse(t, "see `code` now")

	assert.Equal(t, []span{
		{mdast.KindInlineCode, 4, 10},
		{mdast.KindCodeMark, 4, 5},
		{mdast.KindCodeMark, 9, 10},
	}, collect(doc.Root, mdast.KindInlineCode, mdast.KindCodeMark))
}

func TestMapper_CodeSpanPadding(t *testing.T) {
	t.Parallel()

	doc := parse(t, "`` `tick` ``")

	assert.Equal(t, []span{
		{mdast.KindInlineCode, 0, 12},
		{mdast.KindCodeMark, 0, 3},
		{mdast.KindCodeMark, 9, 12},
	}, collect(doc.Root, mdast.KindInlineCode, mdast.KindCodeMark))
}

func TestMapper_OrderedList(t *testing.T) {
	t.Parallel()

	doc := parse(t, "1. one\n2. two\n")

	assert.Equal(t, []span{
		{mdast.KindOrderedList, 0, 13},
		{mdast.KindListItem, 0, 6},
		{mdast.KindListMark, 0, 3},
		{mdast.KindListItem, 7, 13},
		{mdast.KindListMark, 7, 10},
	}, collect(doc.Root, mdast.KindOrderedList, mdast.KindListItem, mdast.KindListMark))
}

func TestMapper_BulletList(t *testing.T) {
	t.Parallel()

	doc := parse(t, "- a\n- b\n")

	assert.Equal(t, []span{
		{mdast.KindBulletList, 0, 7},
		{mdast.KindListMark, 0, 2},
		{mdast.KindListMark, 4, 6},
	}, collect(doc.Root, mdast.KindBulletList, mdast.KindListMark))
}

func TestMapper_Blockquote(t *testing.T) {
	t.Parallel()

	doc := parse(t, "> a\n> b\n")

	quote := doc.Root.FirstChild
	require.NotNil(t, quote)
	assert.Equal(t, mdast.KindBlockquote, quote.Kind)
	assert.Equal(t, 0, quote.From)
	assert.Equal(t, 7, quote.To)

	assert.Equal(t, []span{
		{mdast.KindQuoteMark, 0, 2},
		{mdast.KindQuoteMark, 4, 6},
	}, collect(quote, mdast.KindQuoteMark))
}

func TestMapper_BlockquoteTrailingMarker(t *testing.T) {
	t.Parallel()

	doc := parse(t, "> a\n>\n")

	assert.Equal(t, []span{
		{mdast.KindQuoteMark, 0, 2},
		{mdast.KindQuoteMark, 4, 5},
	}, collect(doc.Root, mdast.KindQuoteMark))
}

func TestMapper_FencedCode(t *testing.T) {
	t.Parallel()

	doc := parse(t, "```go\nx\n```\n")

	fence := doc.Root.FirstChild
	require.NotNil(t, fence)
	assert.Equal(t, mdast.KindFencedCode, fence.Kind)
	assert.Equal(t, "go", fence.Info)
	assert.Equal(t, []span{
		{mdast.KindFencedCode, 0, 11},
		{mdast.KindCodeMark, 0, 5},
		{mdast.KindCodeMark, 8, 11},
	}, collect(doc.Root, mdast.KindFencedCode, mdast.KindCodeMark))
}

func TestMapper_UnclosedFence(t *testing.T) {
	t.Parallel()

	doc := parse(t, "~~~\nbody\n")

	assert.Equal(t, []span{
		{mdast.KindFencedCode, 0, 8},
		{mdast.KindCodeMark, 0, 3},
	}, collect(doc.Root, mdast.KindFencedCode, mdast.KindCodeMark))
}

func TestMapper_IndentedCode(t *testing.T) {
	t.Parallel()

	doc := parse(t, "para\n\n    code\n")

	blocks := mdast.FindByKind(doc.Root, mdast.KindCodeBlock)
	require.Len(t, blocks, 1)
	assert.Equal(t, 10, blocks[0].From)
	assert.Equal(t, 14, blocks[0].To)
}

func TestMapper_Link(t *testing.T) {
	t.Parallel()

	doc := parse(t, "[go](https://go.dev)")

	assert.Equal(t, []span{{mdast.KindLink, 0, 20}}, collect(doc.Root, mdast.KindLink))
}

func TestMapper_Image(t *testing.T) {
	t.Parallel()

	doc := parse(t, "x ![alt](a.png)")

	assert.Equal(t, []span{{mdast.KindImage, 2, 15}}, collect(doc.Root, mdast.KindImage))
}

func TestMapper_AutoLinkDropped(t *testing.T) {
	t.Parallel()

	doc := parse(t, "<http://example.com>")

	assert.Empty(t, mdast.FindByKind(doc.Root, mdast.KindLink))
}

func TestMapper_ChildrenAscending(t *testing.T) {
	t.Parallel()

	doc := parse(t, "# *a* `b`\n\n> - x\n>   y\n")

	require.NoError(t, mdast.Each(doc.Root, func(n *mdast.Node) error {
		for child := n.FirstChild; child != nil && child.Next != nil; child = child.Next {
			assert.LessOrEqual(t, child.From, child.Next.From, "%s children of %s", child.Kind, n.Kind)
		}
		return nil
	}))
}

// The parsed tree drives the annotator end to end.
func TestMapper_AnnotateParsedTree(t *testing.T) {
	t.Parallel()

	doc := parse(t, "## Title\n\nsee `code`\n")

	spans, err := annotate.Annotate(doc.Root, []annotate.Range{annotate.FullRange(doc)}, annotate.ModeDecorateHide)
	require.NoError(t, err)

	assert.Equal(t, []annotate.Span{
		{From: 0, To: 3, Hidden: true},
		{From: 0, To: 8, Class: "cm-h2"},
		{From: 14, To: 15, Hidden: true},
		{From: 14, To: 20, Class: "cm-inline-code"},
		{From: 19, To: 20, Hidden: true},
	}, spans)
}
