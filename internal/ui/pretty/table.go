package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mdspan/pkg/annotate"
	"github.com/yaklabco/mdspan/pkg/mdast"
)

// Table formatting constants.
const (
	tablePadding   = 2
	minKindWidth   = 16
	minClassWidth  = 16
	minSourceWidth = 8
	heavySeparator = "="
	lightSeparator = "-"
)

// Class sources shown in the SOURCE column.
const (
	SourceDefault  = "default"
	SourceOverride = "override"
	SourceDisabled = "disabled"
)

// ClassRow is one row of the class table.
type ClassRow struct {
	Kind   string
	Class  string
	Source string
}

// ClassRows lists every decorated kind with the class it receives under
// overrides, in kind order.
func ClassRows(overrides annotate.ClassTable) []ClassRow {
	defaults := annotate.DefaultClasses()

	var rows []ClassRow
	for _, kind := range mdast.Kinds() {
		def, decorated := defaults[kind]
		if !decorated {
			continue
		}

		row := ClassRow{Kind: kind.String(), Class: def, Source: SourceDefault}
		if class, ok := overrides[kind]; ok {
			switch {
			case class == "":
				row.Class, row.Source = "", SourceDisabled
			case class != def:
				row.Class, row.Source = class, SourceOverride
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// TableFormatter formats rows as a styled, width-constrained table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

type classColumnWidths struct {
	kind   int
	class  int
	source int
}

func (w classColumnWidths) total() int {
	return w.kind + w.class + w.source + tablePadding*3
}

// FormatClassTable formats class rows as a table with a legend line.
func (t *TableFormatter) FormatClassTable(rows []ClassRow) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	header := fmt.Sprintf(" %-*s  %-*s  %-*s",
		widths.kind, "KIND",
		widths.class, "CLASS",
		widths.source, "SOURCE",
	)
	builder.WriteString(t.styles.TableHeader.Render(header))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths, lightSeparator))
	builder.WriteString("\n")
	builder.WriteString(t.formatLegend(rows))
	builder.WriteString("\n")

	return builder.String()
}

func (t *TableFormatter) calculateColumnWidths(rows []ClassRow) classColumnWidths {
	widths := classColumnWidths{kind: minKindWidth, class: minClassWidth, source: minSourceWidth}

	for _, row := range rows {
		widths.kind = max(widths.kind, len(row.Kind))
		widths.class = max(widths.class, len(row.Class))
		widths.source = max(widths.source, len(row.Source))
	}

	// Long custom class names give way first.
	if excess := widths.total() - t.termWidth; excess > 0 {
		widths.class = max(minClassWidth, widths.class-excess)
	}

	return widths
}

func (t *TableFormatter) formatSeparator(widths classColumnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, widths.total()))
}

func (t *TableFormatter) formatRow(row ClassRow, widths classColumnWidths) string {
	content := fmt.Sprintf(" %-*s  %-*s  %-*s",
		widths.kind, truncateString(row.Kind, widths.kind),
		widths.class, truncateString(row.Class, widths.class),
		widths.source, row.Source,
	)
	return t.rowStyle(row.Source).Render(content)
}

func (t *TableFormatter) rowStyle(source string) lipgloss.Style {
	switch source {
	case SourceOverride:
		return t.styles.TableOverride
	case SourceDisabled:
		return t.styles.TableDisabled
	default:
		return lipgloss.NewStyle()
	}
}

func (t *TableFormatter) formatLegend(rows []ClassRow) string {
	var overridden, disabled int
	for _, row := range rows {
		switch row.Source {
		case SourceOverride:
			overridden++
		case SourceDisabled:
			disabled++
		}
	}
	return t.styles.Dim.Render(fmt.Sprintf("%d kinds, %d overridden, %d disabled", len(rows), overridden, disabled))
}

// truncateString shortens s to width bytes, marking the cut with "...".
func truncateString(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}
