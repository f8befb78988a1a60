package mcpserver

import (
	"bytes"
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/yaklabco/mdspan/internal/logging"
	"github.com/yaklabco/mdspan/pkg/annotate"
	"github.com/yaklabco/mdspan/pkg/mdast"
	"github.com/yaklabco/mdspan/pkg/parser/goldmark"
	"github.com/yaklabco/mdspan/pkg/render"
	"github.com/yaklabco/mdspan/pkg/runner"
)

// Tool names.
const (
	ToolAnnotate = "annotate_markdown"
	ToolParse    = "parse_markdown"
	ToolRender   = "render_markdown"
)

// Argument names shared by the tools.
const (
	argContent = "content"
	argMode    = "mode"
	argFrom    = "from"
	argTo      = "to"
	argFlavor  = "flavor"
	argTree    = "tree"
	argFormat  = "format"
	argPage    = "page"
)

// AnnotateResult is the structured result of annotate_markdown.
type AnnotateResult struct {
	Ranges []string        `json:"ranges"`
	Spans  []annotate.Span `json:"spans"`
}

// handlers holds the per-server settings shared by every tool call.
type handlers struct {
	opts Options
}

// Tools returns the tool definitions paired with their handlers.
func Tools(opts Options) []server.ServerTool {
	h := &handlers{opts: opts}
	return []server.ServerTool{
		{Tool: AnnotateTool(), Handler: h.annotate},
		{Tool: ParseTool(), Handler: h.parse},
		{Tool: RenderTool(), Handler: h.render},
	}
}

func modeOption() mcp.ToolOption {
	return mcp.WithString(argMode,
		mcp.Description("decorate (classes only) or hide (classes plus hidden markup)"),
		mcp.Enum("decorate", "hide", "decorate+hide", "live"),
		mcp.DefaultString("decorate"),
	)
}

func flavorOption() mcp.ToolOption {
	return mcp.WithString(argFlavor,
		mcp.Description("Markdown flavor"),
		mcp.Enum(goldmark.FlavorCommonMark, goldmark.FlavorGFM),
	)
}

// AnnotateTool returns the annotate_markdown definition.
func AnnotateTool() mcp.Tool {
	return mcp.NewTool(ToolAnnotate,
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDescription("Compute styling spans for Markdown content within a visible byte range"),
		mcp.WithString(argContent, mcp.Required(), mcp.Description("Markdown source")),
		modeOption(),
		mcp.WithNumber(argFrom, mcp.Description("Start of the visible range (byte offset)"), mcp.Min(0)),
		mcp.WithNumber(argTo, mcp.Description("End of the visible range (byte offset, exclusive); defaults to the end"), mcp.Min(0)),
		flavorOption(),
		mcp.WithString(argTree, mcp.Description("Syntax tree as JSON, used instead of parsing the content")),
	)
}

// ParseTool returns the parse_markdown definition.
func ParseTool() mcp.Tool {
	return mcp.NewTool(ToolParse,
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDescription("Parse Markdown content into the syntax tree the annotator consumes"),
		mcp.WithString(argContent, mcp.Required(), mcp.Description("Markdown source")),
		flavorOption(),
		mcp.WithString(argFormat, mcp.Description("Tree encoding"), mcp.Enum("json", "yaml"), mcp.DefaultString("json")),
	)
}

// RenderTool returns the render_markdown definition.
func RenderTool() mcp.Tool {
	return mcp.NewTool(ToolRender,
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDescription("Render annotated Markdown as HTML with one <span> per styled run"),
		mcp.WithString(argContent, mcp.Required(), mcp.Description("Markdown source")),
		modeOption(),
		flavorOption(),
		mcp.WithBoolean(argPage, mcp.Description("Wrap the output in a standalone HTML page")),
	)
}

func (h *handlers) pipeline(req mcp.CallToolRequest) (*runner.Pipeline, error) {
	flavor := req.GetString(argFlavor, h.opts.Flavor)
	if flavor != "" && !goldmark.ValidFlavor(flavor) {
		return nil, fmt.Errorf("unknown flavor %q", flavor)
	}
	parser := goldmark.New(flavor, goldmark.WithLanguageDetection(h.opts.DetectLanguages))
	return runner.NewPipeline(parser, annotate.New(h.opts.Classes)), nil
}

func (h *handlers) annotate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString(argContent)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mode, err := annotate.ParseMode(req.GetString(argMode, ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	opts := runner.PipelineOptions{Mode: mode}
	args := req.GetArguments()
	if _, hasFrom := args[argFrom]; hasFrom || args[argTo] != nil {
		opts.Ranges = []annotate.Range{{
			From: req.GetInt(argFrom, 0),
			To:   req.GetInt(argTo, len(content)),
		}}
	}

	pipeline, err := h.pipeline(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result *runner.FileResult
	if tree := req.GetString(argTree, ""); tree != "" {
		root, decodeErr := mdast.DecodeTree([]byte(tree), mdast.TreeJSON)
		if decodeErr != nil {
			return mcp.NewToolResultError(decodeErr.Error()), nil
		}
		if err := mdast.Validate(root); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("tree: %v", err)), nil
		}
		doc := mdast.NewDocument("", []byte(content))
		doc.Root = root
		result, err = pipeline.AnnotateDocument(ctx, doc, opts)
	} else {
		result, err = pipeline.ProcessContent(ctx, "", []byte(content), opts)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("annotate: %v", err)), nil
	}

	logging.FromContext(ctx).Debug("tool call", logging.FieldTool, ToolAnnotate, logging.FieldSpans, len(result.Spans))

	out := AnnotateResult{
		Ranges: make([]string, 0, len(result.Ranges)),
		Spans:  result.Spans,
	}
	if out.Spans == nil {
		out.Spans = []annotate.Span{}
	}
	for _, r := range result.Ranges {
		out.Ranges = append(out.Ranges, r.String())
	}
	return mcp.NewToolResultJSON(out)
}

func (h *handlers) parse(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString(argContent)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	pipeline, err := h.pipeline(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := pipeline.Parser.Parse(ctx, "", []byte(content))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("parse: %v", err)), nil
	}

	data, err := mdast.EncodeTree(doc.Root, mdast.TreeFormat(req.GetString(argFormat, string(mdast.TreeJSON))))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (h *handlers) render(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString(argContent)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mode, err := annotate.ParseMode(req.GetString(argMode, ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	pipeline, err := h.pipeline(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := pipeline.ProcessContent(ctx, "", []byte(content), runner.PipelineOptions{Mode: mode})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("annotate: %v", err)), nil
	}

	var buf bytes.Buffer
	if req.GetBool(argPage, false) {
		err = render.Page(&buf, "mdspan", result.Document.Content, result.Spans)
	} else {
		err = render.HTML(&buf, result.Document.Content, result.Spans)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}
