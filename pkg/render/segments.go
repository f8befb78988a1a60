// Package render turns annotated markdown back into styled output.
//
// Spans produced by the annotator may nest and overlap. Segments flattens
// them into consecutive runs of source text, each carrying the stack of
// classes in effect, with hidden ranges removed. HTML and Terminal are thin
// writers over those runs.
package render

import (
	"cmp"
	"slices"

	"github.com/yaklabco/mdspan/pkg/annotate"
)

// Segment is a run of source bytes [From, To) styled by every class that
// covers it. Classes are listed in the order their spans start.
type Segment struct {
	From    int      `json:"from"`
	To      int      `json:"to"`
	Classes []string `json:"classes,omitempty"`
	Lang    string   `json:"lang,omitempty"`
}

// Text returns the bytes of content covered by the segment.
func (s Segment) Text(content []byte) []byte {
	return content[s.From:s.To]
}

// Segments splits content into styled runs. Bytes under a hidden span are
// left out. Zero-length spans and spans outside content are ignored.
// Adjacent runs with the same styling are merged.
func Segments(content []byte, spans []annotate.Span) []Segment {
	size := len(content)
	if size == 0 {
		return nil
	}

	live := make([]annotate.Span, 0, len(spans))
	for _, span := range spans {
		from, to := clamp(span.From, size), clamp(span.To, size)
		if from >= to {
			continue
		}
		span.From, span.To = from, to
		live = append(live, span)
	}
	slices.SortStableFunc(live, func(a, b annotate.Span) int {
		return cmp.Compare(a.From, b.From)
	})

	bounds := make([]int, 0, 2*len(live)+2)
	bounds = append(bounds, 0, size)
	for _, span := range live {
		bounds = append(bounds, span.From, span.To)
	}
	slices.Sort(bounds)
	bounds = slices.Compact(bounds)

	var (
		out    []Segment
		active []int
		next   int
	)
	for i := 0; i+1 < len(bounds); i++ {
		from, to := bounds[i], bounds[i+1]

		active = slices.DeleteFunc(active, func(idx int) bool { return live[idx].To <= from })
		for next < len(live) && live[next].From <= from {
			active = append(active, next)
			next++
		}

		seg, hidden := style(live, active)
		if hidden {
			continue
		}
		seg.From, seg.To = from, to

		if n := len(out); n > 0 && out[n-1].To == from && sameStyle(out[n-1], seg) {
			out[n-1].To = to
			continue
		}
		out = append(out, seg)
	}

	return out
}

// style collects the classes and language of the active spans.
func style(spans []annotate.Span, active []int) (Segment, bool) {
	var seg Segment
	for _, idx := range active {
		span := spans[idx]
		if span.Hidden {
			return Segment{}, true
		}
		if span.Class != "" && !slices.Contains(seg.Classes, span.Class) {
			seg.Classes = append(seg.Classes, span.Class)
		}
		if span.Lang != "" {
			seg.Lang = span.Lang
		}
	}
	return seg, false
}

func sameStyle(a, b Segment) bool {
	return a.Lang == b.Lang && slices.Equal(a.Classes, b.Classes)
}

func clamp(offset, size int) int {
	return max(0, min(offset, size))
}
