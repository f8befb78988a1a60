package goldmark

import (
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdspan/pkg/mdast"
)

// unresolved creates a node whose range is not yet known.
func unresolved(kind mdast.NodeKind) *mdast.Node {
	return mdast.NewNode(kind, -1, -1)
}

func isResolved(node *mdast.Node) bool {
	return node != nil && node.From >= 0 && node.To >= node.From
}

// cover grows the node's range to include [from, to).
func cover(node *mdast.Node, from, to int) {
	if from < 0 || to < from {
		return
	}
	if !isResolved(node) {
		mdast.SetRange(node, from, to)
		return
	}
	mdast.SetRange(node, min(node.From, from), max(node.To, to))
}

// coverChildren grows the node's range over all of its children.
func coverChildren(node *mdast.Node) {
	for child := node.FirstChild; child != nil; child = child.Next {
		cover(node, child.From, child.To)
	}
}

// coverLines grows the node's range over its line segments, excluding the
// final line ending.
func (m *mapper) coverLines(node *mdast.Node, lines *text.Segments) {
	if lines == nil || lines.Len() == 0 {
		return
	}

	first := lines.At(0)
	last := lines.At(lines.Len() - 1)
	cover(node, first.Start, m.trimEOL(last.Start, last.Stop))
}

// resolve returns the node when its range is known. Otherwise the node is
// dropped and its children are detached and returned in its place.
func resolve(node *mdast.Node) []*mdast.Node {
	if node == nil {
		return nil
	}
	if isResolved(node) {
		return []*mdast.Node{node}
	}

	children := node.Children()
	for _, child := range children {
		mdast.RemoveChild(node, child)
	}
	return children
}
