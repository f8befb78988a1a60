// Package mdast provides the markdown syntax tree consumed by the span
// annotator. It defines:
//   - Document: the source buffer with its line index and tree root
//   - Node: a kind-tagged node with a half-open byte range and children
//   - walking, validation and interchange (JSON/YAML) helpers
package mdast

// Document is an immutable view of a markdown buffer and its syntax tree.
// It is regenerated by the parser on every edit; nothing holds it across
// annotation passes.
type Document struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full buffer.
	Content []byte

	// Lines contains metadata for each line in the buffer.
	Lines []LineInfo

	// Root is the syntax tree root (Document kind).
	Root *Node
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewDocument creates a Document from content with its line index built.
// The tree root is left nil; a parser or a decoded tree supplies it.
func NewDocument(path string, content []byte) *Document {
	return &Document{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}
