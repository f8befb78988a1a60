package mdast

import "strings"

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [...]string{
	KindUnknown:        "Unknown",
	KindDocument:       "Document",
	KindParagraph:      "Paragraph",
	KindText:           "Text",
	KindListItem:       "ListItem",
	KindLink:           "Link",
	KindImage:          "Image",
	KindHTML:           "HTML",
	KindThematicBreak:  "ThematicBreak",
	KindTable:          "Table",
	KindStrongEmphasis: "StrongEmphasis",
	KindEmphasis:       "Emphasis",
	KindStrikethrough:  "Strikethrough",
	KindInlineCode:     "InlineCode",
	KindATXHeading1:    "ATXHeading1",
	KindATXHeading2:    "ATXHeading2",
	KindATXHeading3:    "ATXHeading3",
	KindATXHeading4:    "ATXHeading4",
	KindATXHeading5:    "ATXHeading5",
	KindATXHeading6:    "ATXHeading6",
	KindSetextHeading1: "SetextHeading1",
	KindSetextHeading2: "SetextHeading2",
	KindSetextHeading3: "SetextHeading3",
	KindSetextHeading4: "SetextHeading4",
	KindSetextHeading5: "SetextHeading5",
	KindSetextHeading6: "SetextHeading6",
	KindBulletList:     "BulletList",
	KindOrderedList:    "OrderedList",
	KindBlockquote:     "Blockquote",
	KindFencedCode:     "FencedCode",
	KindCodeBlock:      "CodeBlock",
	KindHeaderMark:     "HeaderMark",
	KindListMark:       "ListMark",
	KindQuoteMark:      "QuoteMark",
	KindCodeMark:       "CodeMark",
}

// String returns the vocabulary name of the kind.
func (k NodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

// ParseKind resolves a kind name, case-insensitively. The second result
// is false and the kind is KindUnknown when the name is not in the
// vocabulary.
func ParseKind(name string) (NodeKind, bool) {
	for i, candidate := range kindNames {
		if i == int(KindUnknown) {
			continue
		}
		if strings.EqualFold(candidate, name) {
			return NodeKind(i), true
		}
	}
	return KindUnknown, false
}

// Kinds returns every kind in the vocabulary, excluding KindUnknown.
func Kinds() []NodeKind {
	kinds := make([]NodeKind, 0, len(kindNames)-1)
	for i := 1; i < len(kindNames); i++ {
		kinds = append(kinds, NodeKind(i))
	}
	return kinds
}
