package goldmark

import "strings"

// Byte scanners used to recover delimiter and marker positions that goldmark
// does not record on its nodes. All scanners stay within the source buffer.

const (
	maxOrdinalDigits = 9
	minFenceLength   = 3
	maxMarkerIndent  = 3
	maxHeadingMarks  = 6

	containerPrefix = " \t>-+*.)0123456789"
)

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// skipSpaceBack returns the offset of the first space or tab in the run
// that ends just before pos.
func (m *mapper) skipSpaceBack(pos int) int {
	for pos > 0 && isSpace(m.content[pos-1]) {
		pos--
	}
	return pos
}

// runBack counts up to limit consecutive c bytes ending just before pos.
func (m *mapper) runBack(pos int, c byte, limit int) int {
	n := 0
	for n < limit && pos-n > 0 && m.content[pos-n-1] == c {
		n++
	}
	return n
}

// runForward counts up to limit consecutive c bytes starting at pos.
func (m *mapper) runForward(pos int, c byte, limit int) int {
	n := 0
	for n < limit && pos+n < len(m.content) && m.content[pos+n] == c {
		n++
	}
	return n
}

// trimEnd moves end back over trailing whitespace and line endings,
// never past start.
func (m *mapper) trimEnd(start, end int) int {
	for end > start {
		switch m.content[end-1] {
		case ' ', '\t', '\r', '\n':
			end--
		default:
			return end
		}
	}
	return end
}

// trimEOL moves end back over line-ending bytes only.
func (m *mapper) trimEOL(start, end int) int {
	for end > start && (m.content[end-1] == '\n' || m.content[end-1] == '\r') {
		end--
	}
	return end
}

// isBlank reports whether [start, end) holds only spaces and tabs.
func (m *mapper) isBlank(start, end int) bool {
	for i := start; i < end; i++ {
		if !isSpace(m.content[i]) {
			return false
		}
	}
	return true
}

// matchClose returns the offset just past the bracket that closes the one
// at open, honoring nesting and backslash escapes. It returns open when the
// bracket is never closed.
func (m *mapper) matchClose(open int, opening, closing byte) int {
	depth := 0
	for i := open; i < len(m.content); i++ {
		switch m.content[i] {
		case '\\':
			i++
		case opening:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return i + 1
			}
		case '\n':
			if i+1 < len(m.content) && m.content[i+1] == '\n' {
				return open
			}
		}
	}
	return open
}

// findFence locates a code fence on the line [start, end). Container
// prefixes (indentation, quote markers, list markers) may precede it.
func (m *mapper) findFence(start, end int) (int, byte, int, bool) {
	pos := start
	for pos < end && strings.IndexByte(containerPrefix, m.content[pos]) >= 0 {
		pos++
	}
	if pos >= end {
		return 0, 0, 0, false
	}

	char := m.content[pos]
	if char != '`' && char != '~' {
		return 0, 0, 0, false
	}

	n := m.runForward(pos, char, end-pos)
	if n < minFenceLength {
		return 0, 0, 0, false
	}

	return pos, char, n, true
}

// listMarker finds the bullet or ordinal marker that precedes an item's
// content on the same line. It returns the marker start and the marker end
// including one following space.
func (m *mapper) listMarker(contentStart int) (int, int, bool) {
	markerEnd := m.skipSpaceBack(contentStart)
	if markerEnd == 0 {
		return 0, 0, false
	}

	pos := markerEnd - 1
	switch c := m.content[pos]; {
	case c == '-' || c == '+' || c == '*':
	case c == '.' || c == ')':
		digits := m.digitsBack(pos)
		if digits == 0 {
			return 0, 0, false
		}
		pos -= digits
	default:
		return 0, 0, false
	}

	if pos > 0 {
		if prev := m.content[pos-1]; !isSpace(prev) && prev != '\n' && prev != '>' {
			return 0, 0, false
		}
	}

	end := markerEnd
	if end < contentStart {
		end++
	}

	return pos, end, true
}

func (m *mapper) digitsBack(pos int) int {
	n := 0
	for n < maxOrdinalDigits && pos-n > 0 && isDigit(m.content[pos-n-1]) {
		n++
	}
	return n
}

// quoteMarker finds the '>' that precedes a blockquote's content on the
// same line.
func (m *mapper) quoteMarker(contentStart int) (int, bool) {
	pos := m.skipSpaceBack(contentStart)
	if pos == 0 || m.content[pos-1] != '>' {
		return 0, false
	}
	return pos - 1, true
}

// quoteMarkerAt finds a '>' at column col of the line starting at
// lineStart, allowing a few spaces of extra indentation.
func (m *mapper) quoteMarkerAt(lineStart, lineEnd, col int) (int, bool) {
	pos := lineStart + col
	for skipped := 0; pos < lineEnd; skipped++ {
		switch {
		case m.content[pos] == '>':
			return pos, true
		case isSpace(m.content[pos]) && skipped < maxMarkerIndent:
			pos++
		default:
			return 0, false
		}
	}
	return 0, false
}

// quoteMarkerEnd returns the end of the quote marker at gt: the '>' plus
// one following space.
func (m *mapper) quoteMarkerEnd(gt int) int {
	end := gt + 1
	if end < len(m.content) && isSpace(m.content[end]) {
		end++
	}
	return end
}

// atxOpening finds the '#' run before a heading's content. It returns the
// start of the run and false when the heading is not in ATX form.
func (m *mapper) atxOpening(contentStart int) (int, bool) {
	hashEnd := m.skipSpaceBack(contentStart)
	if hashEnd == contentStart {
		return 0, false
	}

	n := m.runBack(hashEnd, '#', maxHeadingMarks+1)
	if n == 0 || n > maxHeadingMarks {
		return 0, false
	}

	start := hashEnd - n
	if start > 0 {
		if prev := m.content[start-1]; !isSpace(prev) && prev != '\n' && prev != '>' {
			return 0, false
		}
	}

	return start, true
}

// underline finds the '=' or '-' run of a setext underline on the line
// [start, end).
func (m *mapper) underline(start, end int) (int, int, bool) {
	for pos := start; pos < end; pos++ {
		switch m.content[pos] {
		case '=', '-':
			return pos, m.trimEnd(pos, end), true
		case ' ', '\t', '>':
		default:
			return 0, 0, false
		}
	}
	return 0, 0, false
}
