package annotate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdspan/pkg/mdast"
)

// ErrInvalidRanges is returned for visible ranges that are inverted,
// negative, descending or overlapping.
var ErrInvalidRanges = errors.New("invalid visible ranges")

// Range is a visible byte range [From, To).
type Range struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

// IsEmpty reports whether the range covers no bytes.
func (r Range) IsEmpty() bool {
	return r.From >= r.To
}

// Intersects reports whether the node range [from, to) overlaps r.
// A zero-length node intersects when its offset lies inside r.
func (r Range) Intersects(from, to int) bool {
	if r.IsEmpty() {
		return false
	}
	if from == to {
		return from >= r.From && from < r.To
	}
	return from < r.To && to > r.From
}

// String formats the range as "from:to".
func (r Range) String() string {
	return strconv.Itoa(r.From) + ":" + strconv.Itoa(r.To)
}

// ValidateRanges checks that ranges are well formed, ascending and
// non-overlapping. Annotate does not call it.
func ValidateRanges(ranges []Range) error {
	for i, r := range ranges {
		if r.From < 0 || r.To < r.From {
			return fmt.Errorf("%w: range %d [%d,%d) is inverted or negative", ErrInvalidRanges, i, r.From, r.To)
		}
		if i > 0 && r.From < ranges[i-1].To {
			return fmt.Errorf("%w: range %d [%d,%d) overlaps or precedes [%d,%d)",
				ErrInvalidRanges, i, r.From, r.To, ranges[i-1].From, ranges[i-1].To)
		}
	}
	return nil
}

// FullRange returns the range covering the whole document.
func FullRange(doc *mdast.Document) Range {
	return Range{From: 0, To: len(doc.Content)}
}

// LineRange returns the range covering 1-based lines first through last,
// including the final newline. last is clamped to the document's line count.
func LineRange(doc *mdast.Document, first, last int) (Range, error) {
	count := doc.LineCount()
	if last > count {
		last = count
	}
	if first < 1 || first > last {
		return Range{}, fmt.Errorf("%w: lines %d:%d outside document of %d lines", ErrInvalidRanges, first, last, count)
	}

	return Range{
		From: doc.Lines[first-1].StartOffset,
		To:   doc.Lines[last-1].EndOffset,
	}, nil
}

// ParseRange parses "from:to" into a Range.
func ParseRange(text string) (Range, error) {
	from, to, err := parsePair(text)
	if err != nil {
		return Range{}, err
	}
	return Range{From: from, To: to}, nil
}

// ParseLines parses "first:last" (or a single "n") into 1-based line numbers.
func ParseLines(text string) (int, int, error) {
	if !strings.Contains(text, ":") {
		line, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRanges, text)
		}
		return line, line, nil
	}
	return parsePair(text)
}

func parsePair(text string) (int, int, error) {
	left, right, ok := strings.Cut(text, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q is not of the form a:b", ErrInvalidRanges, text)
	}

	first, err := strconv.Atoi(strings.TrimSpace(left))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRanges, text)
	}
	second, err := strconv.Atoi(strings.TrimSpace(right))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRanges, text)
	}

	return first, second, nil
}
