// Package annotate turns a markdown syntax tree and a set of visible byte
// ranges into an ordered list of styling spans for live-preview rendering.
//
// The annotator is a pure function of its inputs. It holds no state between
// calls, never logs, and is safe to call concurrently on distinct inputs.
package annotate

import (
	"cmp"
	"slices"

	"github.com/yaklabco/mdspan/pkg/mdast"
)

// Span is a styling or elision instruction over the byte range [From, To).
// A hidden span has an empty Class and asks the renderer to elide its bytes.
type Span struct {
	From   int    `json:"from" yaml:"from"`
	To     int    `json:"to" yaml:"to"`
	Class  string `json:"class,omitempty" yaml:"class,omitempty"`
	Hidden bool   `json:"hidden,omitempty" yaml:"hidden,omitempty"`

	// Lang is the code-block language, set on code-block spans only.
	Lang string `json:"lang,omitempty" yaml:"lang,omitempty"`
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.To - s.From
}

// Annotator maps node kinds to span classes.
// The zero value uses DefaultClasses.
type Annotator struct {
	// Classes overrides the class of individual kinds. Kinds absent from
	// the table fall back to their default class.
	Classes ClassTable
}

// New creates an Annotator with the given class overrides.
func New(classes ClassTable) *Annotator {
	return &Annotator{Classes: classes}
}

// Annotate runs the default Annotator. See Annotator.Annotate.
func Annotate(root *mdast.Node, ranges []Range, mode Mode) ([]Span, error) {
	var annotator Annotator
	return annotator.Annotate(root, ranges, mode)
}

// Annotate walks the parts of the tree that intersect ranges and returns the
// spans for every decorated construct found there, ordered by ascending From
// then ascending To. Spans with equal bounds keep pre-order visitation order.
//
// Ranges must be ascending and non-overlapping; they are not sorted or
// checked here (see ValidateRanges). A node reached from several ranges is
// annotated once. Spans are not clipped to the ranges.
//
// Every visited node is checked against its parent. A node with To < From
// or a child escaping its parent fails the call with ErrMalformedTree and no
// spans are returned. Nodes of unknown kind receive no span.
func (a *Annotator) Annotate(root *mdast.Node, ranges []Range, mode Mode) ([]Span, error) {
	w := &walker{
		classes: a.Classes,
		mode:    mode,
		seen:    make(map[*mdast.Node]struct{}),
		spans:   []Span{},
	}

	if root != nil {
		for _, r := range ranges {
			if r.IsEmpty() {
				continue
			}
			if err := w.visit(root, r); err != nil {
				return nil, err
			}
		}
	}

	slices.SortStableFunc(w.spans, compareSpans)

	builder := NewBuilder(len(w.spans))
	for _, span := range w.spans {
		if err := builder.Add(span); err != nil {
			return nil, err
		}
	}

	return builder.Spans(), nil
}

func compareSpans(a, b Span) int {
	if c := cmp.Compare(a.From, b.From); c != 0 {
		return c
	}
	return cmp.Compare(a.To, b.To)
}

// walker holds the state of one Annotate call.
type walker struct {
	classes ClassTable
	mode    Mode
	seen    map[*mdast.Node]struct{}
	spans   []Span
}

// visit annotates the nodes of root that intersect r and prunes the
// subtrees outside it. Each reached node is checked before the range test.
func (w *walker) visit(root *mdast.Node, r Range) error {
	return mdast.Walk(root, func(n *mdast.Node) (mdast.WalkStatus, error) {
		if err := mdast.CheckNode(n); err != nil {
			return mdast.WalkStop, err
		}
		if !r.Intersects(n.From, n.To) {
			return mdast.WalkSkipChildren, nil
		}
		if _, done := w.seen[n]; !done {
			w.seen[n] = struct{}{}
			w.emit(n)
		}
		return mdast.WalkContinue, nil
	})
}

func (w *walker) emit(n *mdast.Node) {
	if n.Kind.IsMarker() {
		if w.mode == ModeDecorateHide {
			w.hide(n.From, n.To)
		}
		return
	}

	class, ok := w.classes.Class(n.Kind)
	if !ok {
		return
	}

	span := Span{From: n.From, To: n.To, Class: class}
	if isCodeBlock(n.Kind) {
		span.Lang = n.Info
	}
	w.spans = append(w.spans, span)

	// Inline code without explicit delimiter markers hides its outer bytes.
	if w.mode == ModeDecorateHide && n.Kind == mdast.KindInlineCode &&
		!hasMarkerChild(n) && n.Len() >= 2 {
		w.hide(n.From, n.From+1)
		w.hide(n.To-1, n.To)
	}
}

func (w *walker) hide(from, to int) {
	if to <= from {
		return
	}
	w.spans = append(w.spans, Span{From: from, To: to, Hidden: true})
}

func hasMarkerChild(n *mdast.Node) bool {
	for child := n.FirstChild; child != nil; child = child.Next {
		if child.Kind.IsMarker() {
			return true
		}
	}
	return false
}

func isCodeBlock(kind mdast.NodeKind) bool {
	return kind == mdast.KindFencedCode || kind == mdast.KindCodeBlock
}
