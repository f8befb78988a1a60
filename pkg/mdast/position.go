package mdast

// Position is a 1-based line and byte column.
type Position struct {
	Line   int
	Column int
}

// SourcePosition is a byte range expressed as line/column pairs. The end
// column is exclusive.
type SourcePosition struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Start returns the start position.
func (sp SourcePosition) Start() Position {
	return Position{Line: sp.StartLine, Column: sp.StartColumn}
}

// End returns the end position.
func (sp SourcePosition) End() Position {
	return Position{Line: sp.EndLine, Column: sp.EndColumn}
}

// IsValid reports whether both ends resolved to a line.
func (sp SourcePosition) IsValid() bool {
	return sp.StartLine > 0 && sp.StartColumn > 0 && sp.EndLine > 0 && sp.EndColumn > 0
}

// IsSingleLine reports whether the range starts and ends on one line.
func (sp SourcePosition) IsSingleLine() bool {
	return sp.StartLine == sp.EndLine
}

// PositionOf converts the byte range [from, to) to line/column positions.
func (d *Document) PositionOf(from, to int) SourcePosition {
	startLine, startCol := d.LineAt(from)
	endLine, endCol := d.LineAt(to)
	return SourcePosition{StartLine: startLine, StartColumn: startCol, EndLine: endLine, EndColumn: endCol}
}

// Text returns the source bytes of n, or nil if n lies outside the content.
func (d *Document) Text(n *Node) []byte {
	if n == nil || n.From < 0 || n.To > len(d.Content) || n.From > n.To {
		return nil
	}
	return d.Content[n.From:n.To]
}
