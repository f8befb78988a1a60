package mdast

import (
	"errors"
	"fmt"
)

// ErrMalformedTree indicates a node whose range is invalid: either of
// negative length or escaping its parent's range.
var ErrMalformedTree = errors.New("malformed tree")

// MalformedTreeError describes the node that violated the tree contract.
type MalformedTreeError struct {
	// Kind is the offending node's kind name.
	Kind string

	// From and To are the offending node's bounds.
	From int
	To   int

	// Reason says which constraint failed.
	Reason string
}

// Error implements error.
func (e *MalformedTreeError) Error() string {
	return fmt.Sprintf("malformed tree: %s [%d,%d): %s", e.Kind, e.From, e.To, e.Reason)
}

// Is reports whether target is ErrMalformedTree.
func (e *MalformedTreeError) Is(target error) bool {
	return target == ErrMalformedTree
}

// Reasons reported by CheckNode.
const (
	ReasonNegativeLength = "range ends before it starts"
	ReasonEscapesParent  = "range escapes parent range"
)

// CheckNode validates a single node against its parent.
// It does not descend into children.
func CheckNode(n *Node) error {
	if n.To < n.From {
		return malformed(n, ReasonNegativeLength)
	}

	if parent := n.Parent; parent != nil && (n.From < parent.From || n.To > parent.To) {
		return malformed(n, ReasonEscapesParent)
	}

	return nil
}

// Validate checks every node of the tree rooted at root.
// It returns the first violation found in pre-order.
func Validate(root *Node) error {
	return Each(root, CheckNode)
}

func malformed(n *Node, reason string) error {
	return &MalformedTreeError{
		Kind:   n.KindName(),
		From:   n.From,
		To:     n.To,
		Reason: reason,
	}
}
