package mdast

// WalkStatus tells Walk how to continue after visiting a node.
type WalkStatus int

const (
	// WalkContinue descends into the node's children.
	WalkContinue WalkStatus = iota

	// WalkSkipChildren moves on to the node's next sibling.
	WalkSkipChildren

	// WalkStop ends the walk.
	WalkStop
)

// Visitor is called for every node Walk reaches.
type Visitor func(n *Node) (WalkStatus, error)

// Walk visits root and its descendants in pre-order, in source order among
// siblings. A non-nil error ends the walk and is returned.
func Walk(root *Node, visit Visitor) error {
	_, err := walk(root, visit)
	return err
}

// walk reports whether the walk was stopped.
func walk(n *Node, visit Visitor) (bool, error) {
	if n == nil {
		return false, nil
	}

	status, err := visit(n)
	switch {
	case err != nil, status == WalkStop:
		return true, err
	case status == WalkSkipChildren:
		return false, nil
	}

	for child := n.FirstChild; child != nil; child = child.Next {
		if stopped, err := walk(child, visit); stopped {
			return true, err
		}
	}
	return false, nil
}

// Each calls fn for every node in pre-order and returns its first error.
func Each(root *Node, fn func(n *Node) error) error {
	return Walk(root, func(n *Node) (WalkStatus, error) {
		return WalkContinue, fn(n)
	})
}

// FindAll returns every node matching predicate, in pre-order.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var found []*Node
	_ = Walk(root, func(n *Node) (WalkStatus, error) {
		if predicate(n) {
			found = append(found, n)
		}
		return WalkContinue, nil
	})
	return found
}

// FindFirst returns the first node in pre-order matching predicate, or nil.
func FindFirst(root *Node, predicate func(n *Node) bool) *Node {
	var found *Node
	_ = Walk(root, func(n *Node) (WalkStatus, error) {
		if predicate(n) {
			found = n
			return WalkStop, nil
		}
		return WalkContinue, nil
	})
	return found
}

// FindByKind returns every node of kind.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool { return n.Kind == kind })
}
