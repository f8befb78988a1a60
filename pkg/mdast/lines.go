package mdast

import (
	"bytes"
	"sort"
)

// BuildLines indexes the lines of content. LF and CRLF endings are both
// recognized; NewlineStart points at the '\r' of a CRLF. Content ending in a
// newline has a final empty line, and empty content has no lines.
func BuildLines(content []byte) []LineInfo {
	lines := make([]LineInfo, 0, bytes.Count(content, []byte{'\n'})+1)
	if len(content) == 0 {
		return lines
	}

	start := 0
	for {
		idx := bytes.IndexByte(content[start:], '\n')
		if idx < 0 {
			break
		}
		end := start + idx
		newline := end
		if end > start && content[end-1] == '\r' {
			newline--
		}
		lines = append(lines, LineInfo{StartOffset: start, NewlineStart: newline, EndOffset: end + 1})
		start = end + 1
	}

	return append(lines, LineInfo{StartOffset: start, NewlineStart: len(content), EndOffset: len(content)})
}

// LineIndex returns the 0-based index of the line containing offset, or -1
// if the offset is out of range. An offset equal to the end of the last
// line belongs to it.
func LineIndex(lines []LineInfo, offset int) int {
	if offset < 0 || len(lines) == 0 {
		return -1
	}

	idx := sort.Search(len(lines), func(i int) bool { return lines[i].EndOffset > offset })
	if idx < len(lines) {
		return idx
	}
	if last := len(lines) - 1; offset <= lines[last].EndOffset {
		return last
	}
	return -1
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.Lines)
}

// LineAt converts a byte offset to a 1-based line and byte column. Offsets
// at or past the end of the content land on the last line, so the exclusive
// end of a span gets a column one past its last byte. Returns (0, 0) for a
// negative offset or an empty document.
func (d *Document) LineAt(offset int) (int, int) {
	if offset < 0 || len(d.Lines) == 0 {
		return 0, 0
	}

	idx := len(d.Lines) - 1
	if offset < len(d.Content) {
		idx = LineIndex(d.Lines, offset)
	}
	return idx + 1, offset - d.Lines[idx].StartOffset + 1
}
