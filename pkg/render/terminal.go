package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/yaklabco/mdspan/pkg/annotate"
	"github.com/yaklabco/mdspan/pkg/mdast"
)

// Styler adds the look of one class to a style.
type Styler func(lipgloss.Style) lipgloss.Style

// Theme maps span classes to terminal styling.
type Theme map[string]Styler

// NewTheme builds the terminal theme for a class table, so that
// overridden class names keep the look of their kind.
func NewTheme(classes annotate.ClassTable) Theme {
	theme := make(Theme)
	for _, kind := range mdast.Kinds() {
		class, ok := classes.Class(kind)
		if !ok {
			continue
		}
		if styler := kindStyler(kind); styler != nil {
			theme[class] = styler
		}
	}
	return theme
}

func kindStyler(kind mdast.NodeKind) Styler {
	//exhaustive:ignore
	switch kind {
	case mdast.KindStrongEmphasis:
		return func(s lipgloss.Style) lipgloss.Style { return s.Bold(true) }
	case mdast.KindEmphasis:
		return func(s lipgloss.Style) lipgloss.Style { return s.Italic(true) }
	case mdast.KindStrikethrough:
		return func(s lipgloss.Style) lipgloss.Style { return s.Strikethrough(true) }
	case mdast.KindInlineCode:
		return func(s lipgloss.Style) lipgloss.Style { return s.Foreground(lipgloss.Color("13")) }
	case mdast.KindBlockquote:
		return func(s lipgloss.Style) lipgloss.Style { return s.Foreground(lipgloss.Color("8")).Italic(true) }
	case mdast.KindFencedCode, mdast.KindCodeBlock:
		return func(s lipgloss.Style) lipgloss.Style { return s.Foreground(lipgloss.Color("10")) }
	case mdast.KindBulletList, mdast.KindOrderedList:
		return nil
	}

	switch kind.HeadingLevel() {
	case 0:
		return nil
	case 1:
		return func(s lipgloss.Style) lipgloss.Style {
			return s.Bold(true).Underline(true).Foreground(lipgloss.Color("14"))
		}
	default:
		return func(s lipgloss.Style) lipgloss.Style { return s.Bold(true).Foreground(lipgloss.Color("14")) }
	}
}

// TerminalOptions configures the terminal preview.
type TerminalOptions struct {
	Color bool
	Theme Theme
}

// Terminal writes the elided text of content, styled with the default
// theme when color is enabled.
func Terminal(w io.Writer, content []byte, spans []annotate.Span, color bool) error {
	return TerminalWith(w, content, spans, TerminalOptions{Color: color})
}

// TerminalWith writes the preview with explicit options.
func TerminalWith(w io.Writer, content []byte, spans []annotate.Span, opts TerminalOptions) error {
	theme := opts.Theme
	if theme == nil {
		theme = NewTheme(nil)
	}

	renderer := lipgloss.NewRenderer(w)
	if opts.Color {
		renderer.SetColorProfile(termenv.ANSI256)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}

	var buf strings.Builder
	for _, seg := range Segments(content, spans) {
		text := string(seg.Text(content))
		if !opts.Color || len(seg.Classes) == 0 {
			buf.WriteString(text)
			continue
		}

		style := renderer.NewStyle()
		for _, class := range seg.Classes {
			if styler, ok := theme[class]; ok {
				style = styler(style)
			}
		}

		// Render pads multi-line input to a block, so style line by line.
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			if i > 0 {
				buf.WriteByte('\n')
			}
			if line != "" {
				buf.WriteString(style.Render(line))
			}
		}
	}

	if _, err := io.WriteString(w, buf.String()); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	return nil
}
