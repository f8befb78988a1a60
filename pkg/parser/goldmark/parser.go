// Package goldmark parses CommonMark and GFM with yuin/goldmark and maps
// the result onto mdast trees whose ranges cover the full source,
// including the formatting markers goldmark drops.
package goldmark

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdspan/pkg/mdast"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser converts markdown into an mdast.Document using goldmark.
// A Parser is safe for concurrent use.
type Parser struct {
	flavor string
	detect bool
	md     goldmark.Markdown
}

// Option configures a Parser.
type Option func(*Parser)

// WithLanguageDetection toggles guessing the language of code blocks that
// have no info string. It is on by default.
func WithLanguageDetection(enabled bool) Option {
	return func(p *Parser) {
		p.detect = enabled
	}
}

// New creates a new goldmark-based parser for the given flavor.
// Supported flavors are "commonmark" and "gfm"; anything else selects "gfm".
func New(flavor string, opts ...Option) *Parser {
	f := flavorOrDefault(flavor)
	p := &Parser{
		flavor: f,
		detect: true,
		md:     newGoldmarkInstance(f),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ValidFlavor reports whether name is a supported flavor.
func ValidFlavor(name string) bool {
	return name == FlavorCommonMark || name == FlavorGFM
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse builds the Document for content: a private copy of the bytes, its
// line table and a syntax tree whose nodes carry full source ranges and
// one marker node per formatting character run. The tree is validated
// before it is returned.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*mdast.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	doc := mdast.NewDocument(path, bytes.Clone(content))

	reader := text.NewReader(doc.Content)
	gmDoc := p.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	doc.Root = newMapper(doc, p.detect).mapDocument(gmDoc)

	if err := mdast.Validate(doc.Root); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return doc, nil
}

func flavorOrDefault(flavor string) string {
	if ValidFlavor(flavor) {
		return flavor
	}
	return FlavorGFM
}

// flavorExtensions lists the goldmark extensions each flavor enables.
// CommonMark is goldmark's core parser alone.
//
//nolint:gochecknoglobals // Read-only lookup table.
var flavorExtensions = map[string][]goldmark.Extender{
	FlavorCommonMark: nil,
	FlavorGFM:        {extension.GFM},
}

//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(flavorExtensions[flavor]...))
}
