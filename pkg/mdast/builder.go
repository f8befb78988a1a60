package mdast

// NewNode returns a detached node of kind covering [from, to).
func NewNode(kind NodeKind, from, to int) *Node {
	return &Node{Kind: kind, From: from, To: to}
}

// NewRoot returns a Document node covering [0, length).
func NewRoot(length int) *Node {
	return NewNode(KindDocument, 0, length)
}

// AppendChild makes child the last child of parent, detaching it from any
// previous parent first.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	link(parent, child, parent.LastChild, nil)
}

// InsertBefore places node immediately before sibling. It does nothing when
// sibling is detached.
func InsertBefore(sibling, node *Node) {
	if sibling == nil || node == nil || sibling.Parent == nil {
		return
	}
	link(sibling.Parent, node, sibling.Prev, sibling)
}

// InsertSorted adds child to parent keeping children ordered by From, then
// To. Among equal bounds the new child goes last.
func InsertSorted(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	for sibling := parent.FirstChild; sibling != nil; sibling = sibling.Next {
		if child.From < sibling.From || child.From == sibling.From && child.To < sibling.To {
			InsertBefore(sibling, child)
			return
		}
	}
	AppendChild(parent, child)
}

// RemoveChild detaches child when parent is its parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}
	unlink(child)
}

// SetRange moves the bounds of n. A nil node is ignored.
func SetRange(n *Node, from, to int) {
	if n != nil {
		n.From, n.To = from, to
	}
}

// link splices n into parent's children between prev and next, which must
// be adjacent children of parent (nil at either end).
func link(parent, n, prev, next *Node) {
	if n.Parent != nil {
		unlink(n)
	}
	n.Parent, n.Prev, n.Next = parent, prev, next

	if prev == nil {
		parent.FirstChild = n
	} else {
		prev.Next = n
	}
	if next == nil {
		parent.LastChild = n
	} else {
		next.Prev = n
	}
}

func unlink(n *Node) {
	parent := n.Parent
	if n.Prev == nil {
		parent.FirstChild = n.Next
	} else {
		n.Prev.Next = n.Next
	}
	if n.Next == nil {
		parent.LastChild = n.Prev
	} else {
		n.Next.Prev = n.Prev
	}
	n.Parent, n.Prev, n.Next = nil, nil, nil
}
