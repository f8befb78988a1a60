package mcpserver_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/mcptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdspan/pkg/annotate"
	"github.com/yaklabco/mdspan/pkg/config"
	"github.com/yaklabco/mdspan/pkg/mcpserver"
	"github.com/yaklabco/mdspan/pkg/mdast"
)

const sample = "## Title\n\nsee `code`\n"

func newTestServer(t *testing.T, opts mcpserver.Options) *mcptest.Server {
	t.Helper()

	srv, err := mcptest.NewServer(t, mcpserver.Tools(opts)...)
	require.NoError(t, err)
	t.Cleanup(srv.Close)
	return srv
}

func callTool(t *testing.T, srv *mcptest.Server, name string, args map[string]any) (string, bool) {
	t.Helper()

	res, err := srv.Client().CallTool(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	return mcp.GetTextFromContent(res.Content[0]), res.IsError
}

func TestAnnotateTool(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, mcpserver.Options{Flavor: "gfm"})

	tests := []struct {
		name string
		args map[string]any
		want mcpserver.AnnotateResult
	}{
		{
			name: "whole document",
			args: map[string]any{"content": sample},
			want: mcpserver.AnnotateResult{
				Ranges: []string{"0:21"},
				Spans: []annotate.Span{
					{From: 0, To: 8, Class: "cm-h2"},
					{From: 14, To: 20, Class: "cm-inline-code"},
				},
			},
		},
		{
			name: "visible range with hidden markup",
			args: map[string]any{"content": sample, "mode": "hide", "from": 10, "to": 21},
			want: mcpserver.AnnotateResult{
				Ranges: []string{"10:21"},
				Spans: []annotate.Span{
					{From: 14, To: 15, Hidden: true},
					{From: 14, To: 20, Class: "cm-inline-code"},
					{From: 19, To: 20, Hidden: true},
				},
			},
		},
		{
			name: "nothing visible",
			args: map[string]any{"content": sample, "from": 9, "to": 10},
			want: mcpserver.AnnotateResult{Ranges: []string{"9:10"}, Spans: []annotate.Span{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			text, isError := callTool(t, srv, mcpserver.ToolAnnotate, tt.args)
			require.False(t, isError, text)

			var got mcpserver.AnnotateResult
			require.NoError(t, json.Unmarshal([]byte(text), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnnotateTool_HostTree(t *testing.T) {
	t.Parallel()

	content := "*a*"
	root := mdast.NewRoot(len(content))
	mdast.AppendChild(root, mdast.NewNode(mdast.KindEmphasis, 0, 3))
	tree, err := mdast.EncodeTree(root, mdast.TreeJSON)
	require.NoError(t, err)

	srv := newTestServer(t, mcpserver.Options{
		Classes: annotate.ClassTable{mdast.KindEmphasis: "italic"},
	})

	text, isError := callTool(t, srv, mcpserver.ToolAnnotate, map[string]any{
		"content": content,
		"tree":    string(tree),
	})
	require.False(t, isError, text)

	var got mcpserver.AnnotateResult
	require.NoError(t, json.Unmarshal([]byte(text), &got))
	assert.Equal(t, []annotate.Span{{From: 0, To: 3, Class: "italic"}}, got.Spans)
}

func TestAnnotateTool_Errors(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, mcpserver.Options{})

	// Inverted node after the requested range.
	root := mdast.NewRoot(len(sample))
	mdast.AppendChild(root, mdast.NewNode(mdast.KindInlineCode, 19, 14))
	malformed, err := mdast.EncodeTree(root, mdast.TreeJSON)
	require.NoError(t, err)

	tests := []struct {
		name    string
		args    map[string]any
		message string
	}{
		{name: "missing content", args: map[string]any{}, message: "content"},
		{name: "unknown mode", args: map[string]any{"content": sample, "mode": "bold"}, message: "unknown"},
		{name: "unknown flavor", args: map[string]any{"content": sample, "flavor": "mdx"}, message: "flavor"},
		{name: "inverted range", args: map[string]any{"content": sample, "from": 10, "to": 5}, message: "invalid"},
		{name: "bad tree", args: map[string]any{"content": sample, "tree": "{"}, message: "decode tree"},
		{
			name:    "malformed tree outside range",
			args:    map[string]any{"content": sample, "tree": string(malformed), "from": 0, "to": 3},
			message: "malformed tree",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			text, isError := callTool(t, srv, mcpserver.ToolAnnotate, tt.args)
			assert.True(t, isError)
			assert.Contains(t, text, tt.message)
		})
	}
}

func TestParseTool(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, mcpserver.Options{})

	text, isError := callTool(t, srv, mcpserver.ToolParse, map[string]any{"content": sample})
	require.False(t, isError, text)

	root, err := mdast.DecodeTree([]byte(text), mdast.TreeJSON)
	require.NoError(t, err)
	assert.Equal(t, mdast.KindDocument, root.Kind)
	assert.Len(t, mdast.FindByKind(root, mdast.KindInlineCode), 1)

	text, isError = callTool(t, srv, mcpserver.ToolParse, map[string]any{"content": sample, "format": "yaml"})
	require.False(t, isError, text)
	assert.Contains(t, text, "kind: Document")
}

func TestRenderTool(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, mcpserver.Options{})

	text, isError := callTool(t, srv, mcpserver.ToolRender, map[string]any{"content": sample, "mode": "hide"})
	require.False(t, isError, text)
	assert.Contains(t, text, `<pre class="mdspan">`)
	assert.Contains(t, text, `<span class="cm-h2">Title</span>`)

	text, isError = callTool(t, srv, mcpserver.ToolRender, map[string]any{"content": sample, "page": true})
	require.False(t, isError, text)
	assert.Contains(t, text, "<!DOCTYPE html>")
}

func TestNew(t *testing.T) {
	t.Parallel()

	srv := mcpserver.New(mcpserver.Options{})
	require.NotNil(t, srv)

	tools := srv.ListTools()
	assert.Contains(t, tools, mcpserver.ToolAnnotate)
	assert.Contains(t, tools, mcpserver.ToolParse)
	assert.Contains(t, tools, mcpserver.ToolRender)
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Flavor = config.FlavorCommonMark
	cfg.Classes = map[string]string{"Emphasis": "italic"}

	opts, err := mcpserver.OptionsFromConfig(cfg, "1.2.3")
	require.NoError(t, err)
	assert.Equal(t, "commonmark", opts.Flavor)
	assert.Equal(t, "1.2.3", opts.Version)
	assert.True(t, opts.DetectLanguages)
	assert.Equal(t, "italic", opts.Classes[mdast.KindEmphasis])

	cfg.Classes = map[string]string{"Paragraph": "p"}
	_, err = mcpserver.OptionsFromConfig(cfg, "")
	require.ErrorIs(t, err, annotate.ErrUnknownKind)
}
