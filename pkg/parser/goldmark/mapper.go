package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdspan/pkg/langdetect"
	"github.com/yaklabco/mdspan/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast.Node tree with full source
// ranges. goldmark records content segments only, so delimiter and marker
// positions are recovered by scanning the source around them.
//
// Nodes are built bottom-up: a node's range is known only after its
// children are mapped. A node whose range cannot be recovered is dropped
// and its children are hoisted into its parent.
type mapper struct {
	doc     *mdast.Document
	content []byte
	detect  bool
}

// newMapper creates a new mapper for the given document.
func newMapper(doc *mdast.Document, detect bool) *mapper {
	return &mapper{doc: doc, content: doc.Content, detect: detect}
}

// mapDocument converts a goldmark document node to an mdast.Node tree.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	root := mdast.NewRoot(len(m.content))
	m.mapChildren(gmDoc, root)
	return root
}

// mapChildren maps all children of a goldmark node and appends them to parent.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		for _, node := range m.mapNode(child) {
			mdast.AppendChild(parent, node)
		}
	}
}

// mapNode converts a single goldmark node. It returns the node itself, or
// its hoisted children when its range is unknown.
func (m *mapper) mapNode(gmNode ast.Node) []*mdast.Node {
	var node *mdast.Node

	switch gmn := gmNode.(type) {
	// Block-level nodes.
	case *ast.Heading:
		node = m.mapHeading(gmn)

	case *ast.Paragraph, *ast.TextBlock:
		node = m.mapLines(mdast.KindParagraph, gmNode, true)

	case *ast.List:
		kind := mdast.KindBulletList
		if gmn.IsOrdered() {
			kind = mdast.KindOrderedList
		}
		node = m.container(kind, gmn)

	case *ast.ListItem:
		node = m.mapListItem(gmn)

	case *ast.Blockquote:
		node = m.mapBlockquote(gmn)

	case *ast.FencedCodeBlock:
		node = m.mapFencedCode(gmn)

	case *ast.CodeBlock:
		node = m.mapLines(mdast.KindCodeBlock, gmn, false)
		node.Info = m.language(nil, gmn.Lines())

	case *ast.HTMLBlock:
		node = m.mapHTMLBlock(gmn)

	case *ast.ThematicBreak:
		node = m.mapLines(mdast.KindThematicBreak, gmn, false)

	// Inline-level nodes.
	case *ast.Text:
		node = mdast.NewNode(mdast.KindText, gmn.Segment.Start, gmn.Segment.Stop)

	case *ast.String, *ast.AutoLink, *east.TaskCheckBox:
		// No source position is recorded for these.
		return nil

	case *ast.Emphasis:
		kind := mdast.KindEmphasis
		if gmn.Level == 2 {
			kind = mdast.KindStrongEmphasis
		}
		node = m.container(kind, gmn)
		m.widenDelimiters(node, "*_", gmn.Level)

	case *ast.CodeSpan:
		node = m.mapCodeSpan(gmn)

	case *ast.Link:
		node = m.container(mdast.KindLink, gmn)
		m.widenLink(node, false)

	case *ast.Image:
		node = m.container(mdast.KindImage, gmn)
		m.widenLink(node, true)

	case *ast.RawHTML:
		node = unresolved(mdast.KindHTML)
		for i := range gmn.Segments.Len() {
			seg := gmn.Segments.At(i)
			cover(node, seg.Start, seg.Stop)
		}

	// GFM extension nodes.
	case *east.Strikethrough:
		node = m.container(mdast.KindStrikethrough, gmn)
		m.widenDelimiters(node, "~", 2)

	case *east.Table:
		node = m.mapTable(gmn)

	case *east.TableHeader, *east.TableRow, *east.TableCell:
		// Rows and cells are flattened into the table.
		return m.hoist(gmNode)

	default:
		node = m.container(mdast.KindUnknown, gmNode)
		node.Name = gmNode.Kind().String()
		if gmNode.Type() == ast.TypeBlock {
			m.coverLines(node, gmNode.Lines())
		}
	}

	return resolve(node)
}

// container maps a node whose range is the union of its children's.
func (m *mapper) container(kind mdast.NodeKind, gmNode ast.Node) *mdast.Node {
	node := unresolved(kind)
	m.mapChildren(gmNode, node)
	coverChildren(node)
	return node
}

// hoist maps a node's children without a node of its own.
func (m *mapper) hoist(gmNode ast.Node) []*mdast.Node {
	holder := unresolved(mdast.KindUnknown)
	m.mapChildren(gmNode, holder)
	return resolve(holder)
}

// mapLines maps a block whose range is given by its line segments.
func (m *mapper) mapLines(kind mdast.NodeKind, gmNode ast.Node, withChildren bool) *mdast.Node {
	node := unresolved(kind)
	if withChildren {
		m.mapChildren(gmNode, node)
		coverChildren(node)
	}
	m.coverLines(node, gmNode.Lines())
	return node
}

// mapHeading maps ATX and setext headings with their HeaderMark children.
func (m *mapper) mapHeading(heading *ast.Heading) *mdast.Node {
	lines := heading.Lines()
	if lines.Len() == 0 {
		return unresolved(mdast.ATXHeading(heading.Level))
	}

	first := lines.At(0)
	last := lines.At(lines.Len() - 1)

	if start, ok := m.atxOpening(first.Start); ok {
		node := m.container(mdast.ATXHeading(heading.Level), heading)
		line := m.doc.Lines[mdast.LineIndex(m.doc.Lines, first.Start)]
		end := m.trimEnd(start, line.NewlineStart)

		cover(node, start, end)
		mdast.InsertSorted(node, mdast.NewNode(mdast.KindHeaderMark, start, first.Start))

		// Optional closing sequence.
		if last.Stop < end {
			closing := bytes.TrimLeft(m.content[last.Stop:end], " \t")
			if len(closing) > 0 && len(bytes.Trim(closing, "#")) == 0 {
				mdast.InsertSorted(node, mdast.NewNode(mdast.KindHeaderMark, last.Stop, end))
			}
		}
		return node
	}

	node := m.container(mdast.SetextHeading(heading.Level), heading)
	cover(node, first.Start, m.trimEnd(first.Start, last.Stop))

	next := mdast.LineIndex(m.doc.Lines, last.Start) + 1
	if next > 0 && next < len(m.doc.Lines) {
		line := m.doc.Lines[next]
		if start, end, ok := m.underline(line.StartOffset, line.NewlineStart); ok {
			cover(node, start, end)
			mdast.InsertSorted(node, mdast.NewNode(mdast.KindHeaderMark, start, end))
		}
	}

	return node
}

// mapListItem maps a list item and its ListMark.
func (m *mapper) mapListItem(item *ast.ListItem) *mdast.Node {
	node := m.container(mdast.KindListItem, item)
	if !isResolved(node) {
		return node
	}

	if start, end, ok := m.listMarker(node.From); ok {
		cover(node, start, end)
		mdast.InsertSorted(node, mdast.NewNode(mdast.KindListMark, start, end))
	}

	return node
}

// mapBlockquote maps a blockquote with a QuoteMark for every line that
// carries one. Lazy continuation lines have none.
func (m *mapper) mapBlockquote(quote *ast.Blockquote) *mdast.Node {
	node := m.container(mdast.KindBlockquote, quote)
	if !isResolved(node) {
		return node
	}

	gt, ok := m.quoteMarker(node.From)
	if !ok {
		return node
	}

	lines := m.doc.Lines
	firstLine := mdast.LineIndex(lines, gt)
	col := gt - lines[firstLine].StartOffset

	m.addQuoteMark(node, gt)

	lastLine := mdast.LineIndex(lines, node.To-1)
	for i := firstLine + 1; i <= lastLine && i < len(lines); i++ {
		if pos, found := m.quoteMarkerAt(lines[i].StartOffset, lines[i].NewlineStart, col); found {
			m.addQuoteMark(node, pos)
		}
	}

	// Trailing lines holding only a quote marker belong to the quote too.
	for i := lastLine + 1; i < len(lines); i++ {
		pos, found := m.quoteMarkerAt(lines[i].StartOffset, lines[i].NewlineStart, col)
		if !found || !m.isBlank(pos+1, lines[i].NewlineStart) {
			break
		}
		m.addQuoteMark(node, pos)
	}

	return node
}

func (m *mapper) addQuoteMark(node *mdast.Node, gt int) {
	end := m.quoteMarkerEnd(gt)
	cover(node, gt, end)
	mdast.InsertSorted(node, mdast.NewNode(mdast.KindQuoteMark, gt, end))
}

// mapFencedCode maps a fenced code block. The opening fence is the line
// before the first content line (or the info string's line when the block
// is empty); the closing fence is the line after the last content line.
func (m *mapper) mapFencedCode(code *ast.FencedCodeBlock) *mdast.Node {
	node := unresolved(mdast.KindFencedCode)
	lines := m.doc.Lines
	content := code.Lines()

	var openLine int
	switch {
	case content.Len() > 0:
		openLine = mdast.LineIndex(lines, content.At(0).Start) - 1
	case code.Info != nil:
		openLine = mdast.LineIndex(lines, code.Info.Segment.Start)
	default:
		return node
	}
	if openLine < 0 {
		return node
	}

	opening := lines[openLine]
	fenceStart, fenceChar, fenceLen, ok := m.findFence(opening.StartOffset, opening.NewlineStart)
	if !ok {
		return node
	}

	openEnd := m.trimEnd(fenceStart, opening.NewlineStart)
	cover(node, fenceStart, openEnd)
	mdast.AppendChild(node, mdast.NewNode(mdast.KindCodeMark, fenceStart, openEnd))

	lastLine := openLine
	if content.Len() > 0 {
		lastLine = mdast.LineIndex(lines, content.At(content.Len()-1).Start)
		cover(node, fenceStart, lines[lastLine].NewlineStart)
	}

	if closeLine := lastLine + 1; closeLine < len(lines) {
		closing := lines[closeLine]
		start, char, n, found := m.findFence(closing.StartOffset, closing.NewlineStart)
		if found && char == fenceChar && n >= fenceLen && m.isBlank(start+n, closing.NewlineStart) {
			end := start + n
			cover(node, start, end)
			mdast.AppendChild(node, mdast.NewNode(mdast.KindCodeMark, start, end))
		}
	}

	var info []byte
	if code.Info != nil {
		info = code.Info.Segment.Value(m.content)
	}
	node.Info = m.language(info, content)

	return node
}

// mapCodeSpan maps an inline code span with CodeMark children over its
// backtick runs, including the single padding space goldmark strips.
func (m *mapper) mapCodeSpan(span *ast.CodeSpan) *mdast.Node {
	node := m.container(mdast.KindInlineCode, span)
	if !isResolved(node) {
		return node
	}

	inner, innerEnd := node.From, node.To
	from, to := inner, innerEnd
	if from >= 2 && m.content[from-1] == ' ' && m.content[from-2] == '`' {
		from--
	}
	if to+1 < len(m.content) && m.content[to] == ' ' && m.content[to+1] == '`' {
		to++
	}

	opening := m.runBack(from, '`', from)
	closing := m.runForward(to, '`', len(m.content)-to)
	if opening == 0 || closing == 0 {
		return node
	}

	cover(node, from-opening, to+closing)
	mdast.InsertSorted(node, mdast.NewNode(mdast.KindCodeMark, from-opening, inner))
	mdast.InsertSorted(node, mdast.NewNode(mdast.KindCodeMark, innerEnd, to+closing))

	return node
}

// mapHTMLBlock maps a raw HTML block including its closure line.
func (m *mapper) mapHTMLBlock(block *ast.HTMLBlock) *mdast.Node {
	node := m.mapLines(mdast.KindHTML, block, false)
	if block.HasClosure() {
		closure := block.ClosureLine
		cover(node, closure.Start, m.trimEOL(closure.Start, closure.Stop))
	}
	return node
}

// mapTable maps a GFM table, widening the cell contents to the pipes.
func (m *mapper) mapTable(table *east.Table) *mdast.Node {
	node := m.container(mdast.KindTable, table)
	if !isResolved(node) {
		return node
	}

	from := node.From
	for from > 0 && (isSpace(m.content[from-1]) || m.content[from-1] == '|') {
		from--
	}

	to := node.To
	for to < len(m.content) && (isSpace(m.content[to]) || m.content[to] == '|') {
		to++
	}

	cover(node, from, m.trimEnd(from, to))
	return node
}

// widenDelimiters grows an inline node over up to limit delimiter bytes on
// each side. The same delimiter byte must appear on both sides.
func (m *mapper) widenDelimiters(node *mdast.Node, chars string, limit int) {
	if !isResolved(node) || node.From == 0 {
		return
	}

	c := m.content[node.From-1]
	if !bytes.ContainsRune([]byte(chars), rune(c)) {
		return
	}

	left := m.runBack(node.From, c, limit)
	right := m.runForward(node.To, c, limit)
	if right == 0 {
		return
	}

	node.From -= left
	node.To += right
}

// widenLink grows a link or image over its brackets and destination.
func (m *mapper) widenLink(node *mdast.Node, image bool) {
	if !isResolved(node) || node.From == 0 || m.content[node.From-1] != '[' {
		return
	}

	from := node.From - 1
	if image {
		if from == 0 || m.content[from-1] != '!' {
			return
		}
		from--
	}

	to := node.To
	if to >= len(m.content) || m.content[to] != ']' {
		return
	}
	to++

	if to < len(m.content) {
		switch m.content[to] {
		case '(':
			to = m.matchClose(to, '(', ')')
		case '[':
			to = m.matchClose(to, '[', ']')
		}
	}

	cover(node, from, to)
}

// language returns the code-block language from the info string, or a
// guess from the body when detection is enabled.
func (m *mapper) language(info []byte, lines *text.Segments) string {
	var body []byte
	if m.detect && len(bytes.TrimSpace(info)) == 0 {
		for i := range lines.Len() {
			seg := lines.At(i)
			body = append(body, seg.Value(m.content)...)
		}
	}
	return langdetect.Infer(info, body)
}
