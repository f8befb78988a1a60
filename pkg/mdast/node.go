package mdast

// NodeKind classifies the type of a syntax node.
type NodeKind uint16

// Node kinds. Structural kinds carry no styling of their own; the
// formatting kinds and the marker sub-kinds are the vocabulary a span
// annotator understands.
const (
	KindUnknown NodeKind = iota

	// Structural nodes.
	KindDocument
	KindParagraph
	KindText
	KindListItem
	KindLink
	KindImage
	KindHTML
	KindThematicBreak
	KindTable

	// Inline formatting.
	KindStrongEmphasis
	KindEmphasis
	KindStrikethrough
	KindInlineCode

	// Headings.
	KindATXHeading1
	KindATXHeading2
	KindATXHeading3
	KindATXHeading4
	KindATXHeading5
	KindATXHeading6
	KindSetextHeading1
	KindSetextHeading2
	KindSetextHeading3
	KindSetextHeading4
	KindSetextHeading5
	KindSetextHeading6

	// Block formatting.
	KindBulletList
	KindOrderedList
	KindBlockquote
	KindFencedCode
	KindCodeBlock

	// Formatting markers: the raw syntax characters of their parent construct.
	KindHeaderMark
	KindListMark
	KindQuoteMark
	KindCodeMark
)

// Heading levels run from 1 to 6.
const (
	MinHeadingLevel = 1
	MaxHeadingLevel = 6
)

// Node is a single node of a markdown syntax tree over a Document's content.
// Its range is the half-open byte interval [From, To).
type Node struct {
	// Kind identifies what construct this node represents.
	Kind NodeKind

	// From and To delimit the node's bytes in the source buffer.
	From int
	To   int

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Info is the info string of a fenced code block (its language).
	Info string

	// Name preserves the original kind name of a KindUnknown node.
	Name string
}

// HeadingLevel returns the level (1-6) of an ATX or setext heading node,
// or 0 for any other kind.
func (k NodeKind) HeadingLevel() int {
	switch {
	case k >= KindATXHeading1 && k <= KindATXHeading6:
		return int(k-KindATXHeading1) + 1
	case k >= KindSetextHeading1 && k <= KindSetextHeading6:
		return int(k-KindSetextHeading1) + 1
	default:
		return 0
	}
}

// IsMarker returns true for the formatting-marker sub-kinds.
func (k NodeKind) IsMarker() bool {
	switch k {
	case KindHeaderMark, KindListMark, KindQuoteMark, KindCodeMark:
		return true
	default:
		return false
	}
}

// ATXHeading returns the ATX heading kind for level, clamped to 1-6.
func ATXHeading(level int) NodeKind {
	return KindATXHeading1 + NodeKind(clampLevel(level)-1)
}

// SetextHeading returns the setext heading kind for level, clamped to 1-6.
func SetextHeading(level int) NodeKind {
	return KindSetextHeading1 + NodeKind(clampLevel(level)-1)
}

func clampLevel(level int) int {
	if level < MinHeadingLevel {
		return MinHeadingLevel
	}
	if level > MaxHeadingLevel {
		return MaxHeadingLevel
	}
	return level
}

// Len returns the length of the node's range in bytes.
func (n *Node) Len() int {
	return n.To - n.From
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// KindName returns the node's kind name, preferring the preserved
// original name for unknown kinds.
func (n *Node) KindName() string {
	if n.Kind == KindUnknown && n.Name != "" {
		return n.Name
	}
	return n.Kind.String()
}
