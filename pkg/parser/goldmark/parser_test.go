package goldmark

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdspan/pkg/mdast"
)

func TestParser_New(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		flavor     string
		wantFlavor string
	}{
		{"commonmark", FlavorCommonMark, FlavorCommonMark},
		{"gfm", FlavorGFM, FlavorGFM},
		{"invalid defaults to gfm", "invalid", FlavorGFM},
		{"empty defaults to gfm", "", FlavorGFM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := New(tt.flavor)

			if p.Flavor() != tt.wantFlavor {
				t.Errorf("Flavor() = %q, want %q", p.Flavor(), tt.wantFlavor)
			}
		})
	}
}

func TestValidFlavor(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidFlavor("gfm"))
	assert.True(t, ValidFlavor("commonmark"))
	assert.False(t, ValidFlavor("GFM"))
	assert.False(t, ValidFlavor(""))
}

func TestParser_Parse_Basic(t *testing.T) {
	t.Parallel()

	content := []byte("# Hello\n\nWorld")
	doc, err := New(FlavorCommonMark).Parse(context.Background(), "test.md", content)
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, "test.md", doc.Path)
	assert.Equal(t, content, doc.Content)
	assert.NotSame(t, &content[0], &doc.Content[0], "content should be copied")
	assert.Equal(t, 3, doc.LineCount())

	require.NotNil(t, doc.Root)
	assert.Equal(t, mdast.KindDocument, doc.Root.Kind)
	assert.Equal(t, len(content), doc.Root.To)
	assert.Equal(t, 2, doc.Root.ChildCount())
}

func TestParser_Parse_Empty(t *testing.T) {
	t.Parallel()

	doc, err := New(FlavorGFM).Parse(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Root.To)
	assert.False(t, doc.Root.HasChildren())
}

func TestParser_Parse_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc, err := New(FlavorGFM).Parse(ctx, "test.md", []byte("# Hello"))
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, doc)
}

func TestParser_Parse_Strikethrough(t *testing.T) {
	t.Parallel()

	content := []byte("~~gone~~")

	gfm, err := New(FlavorGFM).Parse(context.Background(), "", content)
	require.NoError(t, err)
	assert.Len(t, mdast.FindByKind(gfm.Root, mdast.KindStrikethrough), 1)

	plain, err := New(FlavorCommonMark).Parse(context.Background(), "", content)
	require.NoError(t, err)
	assert.Empty(t, mdast.FindByKind(plain.Root, mdast.KindStrikethrough))
}

func TestParser_Parse_TreesAreValid(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"# Heading\n\nParagraph with *emphasis* and **strong**.\n\n- item 1\n- item 2\n",
		"> quote\n> > nested\n>\n> tail\n",
		"1. one\n   - inner `code`\n2. two\n\n```go\nfunc main() {}\n```\n",
		"Title\n=====\n\nSub\n---\n",
		"| a | b |\n|---|---|\n| *x* | `y` |\n",
		"- [ ] todo\n- [x] done\n",
		"<div>\nhtml\n</div>\n\n***\n\n    indented\n",
		"[link](http://example.com) ![img](a.png) <http://auto.link>\n",
		"```\nunclosed fence\n",
		"-\n  foo\n",
		"> ```\n> code\n> ```\n",
	}

	for _, input := range inputs {
		doc, err := New(FlavorGFM).Parse(context.Background(), "", []byte(input))
		require.NoError(t, err, input)
		require.NoError(t, mdast.Validate(doc.Root), input)
	}
}

func TestParser_WithLanguageDetection(t *testing.T) {
	t.Parallel()

	content := []byte("```\npackage main\n\nfunc main() {}\n```\n")

	detected, err := New(FlavorGFM).Parse(context.Background(), "", content)
	require.NoError(t, err)
	fences := mdast.FindByKind(detected.Root, mdast.KindFencedCode)
	require.Len(t, fences, 1)
	assert.Equal(t, "go", fences[0].Info)

	plain, err := New(FlavorGFM, WithLanguageDetection(false)).Parse(context.Background(), "", content)
	require.NoError(t, err)
	fences = mdast.FindByKind(plain.Root, mdast.KindFencedCode)
	require.Len(t, fences, 1)
	assert.Empty(t, fences[0].Info)
}
