package annotate

import (
	"errors"
	"fmt"
	"slices"
)

// Builder errors.
var (
	// ErrOutOfOrder is returned when a span starts before the previous one.
	ErrOutOfOrder = errors.New("span out of order")

	// ErrInvalidSpan is returned for a span with To < From.
	ErrInvalidSpan = errors.New("invalid span")
)

// Builder accumulates spans in renderer order. Spans must be added with
// non-decreasing From; a span that would require reordering is rejected.
type Builder struct {
	spans []Span
}

// NewBuilder creates a Builder with room for capacity spans.
func NewBuilder(capacity int) *Builder {
	return &Builder{spans: make([]Span, 0, capacity)}
}

// Add appends span, failing fast if it is out of order or inverted.
func (b *Builder) Add(span Span) error {
	if span.To < span.From {
		return fmt.Errorf("%w: [%d,%d)", ErrInvalidSpan, span.From, span.To)
	}

	if n := len(b.spans); n > 0 && span.From < b.spans[n-1].From {
		return fmt.Errorf("%w: [%d,%d) starts before previous start %d",
			ErrOutOfOrder, span.From, span.To, b.spans[n-1].From)
	}

	b.spans = append(b.spans, span)
	return nil
}

// Len returns the number of spans added.
func (b *Builder) Len() int {
	return len(b.spans)
}

// Spans returns a copy of the spans added so far.
func (b *Builder) Spans() []Span {
	if b.spans == nil {
		return []Span{}
	}
	return slices.Clone(b.spans)
}
