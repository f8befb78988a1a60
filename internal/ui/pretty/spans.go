package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/mdspan/pkg/annotate"
	"github.com/yaklabco/mdspan/pkg/mdast"
)

// maxExcerptRunes caps the source excerpt shown next to a span.
const maxExcerptRunes = 40

// FormatSpan formats a single span as a line of the text report:
// location, class (or "hidden"), optional language and a quoted excerpt.
func (s *Styles) FormatSpan(doc *mdast.Document, span annotate.Span) string {
	pos := doc.PositionOf(span.From, span.To)
	location := fmt.Sprintf("%d:%d-%d:%d", pos.StartLine, pos.StartColumn, pos.EndLine, pos.EndColumn)

	label := s.Class.Render(span.Class)
	if span.Hidden {
		label = s.Hidden.Render("hidden")
	}
	if span.Lang != "" {
		label += " " + s.Lang.Render("["+span.Lang+"]")
	}

	return fmt.Sprintf("  %s  %s  %s\n",
		s.Location.Render(location),
		label,
		s.Excerpt.Render(Excerpt(doc.Content, span.From, span.To)),
	)
}

// Excerpt returns the quoted text of [from, to), shortened to a single
// readable line.
func Excerpt(content []byte, from, to int) string {
	from = max(0, min(from, len(content)))
	to = max(from, min(to, len(content)))
	text := string(content[from:to])

	if utf8.RuneCountInString(text) > maxExcerptRunes {
		runes := []rune(text)
		text = string(runes[:maxExcerptRunes-1]) + "…"
	}
	return strconv.Quote(text)
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, spanCount int) string {
	header := s.FilePath.Render(path)
	switch spanCount {
	case 0:
		header += s.Dim.Render(" (no spans)")
	case 1:
		header += s.Dim.Render(" (1 span)")
	default:
		header += s.Dim.Render(fmt.Sprintf(" (%d spans)", spanCount))
	}
	return header
}

// FormatRanges formats visible ranges as "from:to, from:to".
func FormatRanges(ranges []annotate.Range) string {
	parts := make([]string, 0, len(ranges))
	for _, r := range ranges {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, ", ")
}
