package annotate

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/yaklabco/mdspan/pkg/mdast"
)

// ErrUnknownKind is returned when a class override names a kind outside
// the decorated vocabulary.
var ErrUnknownKind = errors.New("unknown node kind")

// ClassTable maps node kinds to span classes. An entry with an empty class
// turns decoration off for that kind.
type ClassTable map[mdast.NodeKind]string

// DefaultClasses returns a fresh copy of the built-in class table.
func DefaultClasses() ClassTable {
	table := make(ClassTable)
	for _, kind := range mdast.Kinds() {
		if class, ok := defaultClass(kind); ok {
			table[kind] = class
		}
	}
	return table
}

// Class returns the class for kind, consulting overrides first.
// The second result is false when the kind is not decorated.
func (t ClassTable) Class(kind mdast.NodeKind) (string, bool) {
	if class, ok := t[kind]; ok {
		return class, class != ""
	}
	return defaultClass(kind)
}

// ParseClassTable builds a table of overrides from kind names, as found in
// configuration files.
func ParseClassTable(overrides map[string]string) (ClassTable, error) {
	if len(overrides) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	table := make(ClassTable, len(overrides))
	for _, name := range names {
		kind, ok := mdast.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
		}
		if _, decorated := defaultClass(kind); !decorated {
			return nil, fmt.Errorf("%w: %q is not decorated", ErrUnknownKind, name)
		}
		table[kind] = overrides[name]
	}

	return table, nil
}

func defaultClass(kind mdast.NodeKind) (string, bool) {
	//exhaustive:ignore
	switch kind {
	case mdast.KindStrongEmphasis:
		return "cm-strong", true
	case mdast.KindEmphasis:
		return "cm-em", true
	case mdast.KindStrikethrough:
		return "cm-strikethrough", true
	case mdast.KindInlineCode:
		return "cm-inline-code", true
	case mdast.KindBulletList, mdast.KindOrderedList:
		return "cm-list-1", true
	case mdast.KindBlockquote:
		return "cm-blockquote", true
	case mdast.KindFencedCode, mdast.KindCodeBlock:
		return "cm-code-block", true
	}

	if level := kind.HeadingLevel(); level > 0 {
		return "cm-h" + strconv.Itoa(level), true
	}

	return "", false
}
