// Package pretty renders the styled terminal output of the CLI: span
// listings, the class table and run summaries.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const defaultTermWidth = 100

// ANSI 256 palette indexes.
const (
	red     = "9"
	green   = "10"
	yellow  = "11"
	blue    = "12"
	magenta = "13"
	gray    = "8"
	silver  = "7"
)

// Styles holds every lipgloss style the CLI renders with.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Span listing.
	FilePath lipgloss.Style
	Location lipgloss.Style
	Class    lipgloss.Style
	Hidden   lipgloss.Style
	Lang     lipgloss.Style
	Excerpt  lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Class table.
	TableHeader    lipgloss.Style
	TableBorder    lipgloss.Style
	TableOverride  lipgloss.Style
	TableDisabled  lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles builds the styles on a renderer pinned to ANSI 256 colors, or
// to plain ASCII when colorEnabled is false. The profile is fixed so output
// does not depend on what lipgloss detects on stdout.
func NewStyles(colorEnabled bool) *Styles {
	renderer := lipgloss.NewRenderer(io.Discard)
	if colorEnabled {
		renderer.SetColorProfile(termenv.ANSI256)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}

	plain := renderer.NewStyle
	fg := func(code string) lipgloss.Style { return plain().Foreground(lipgloss.Color(code)) }

	return &Styles{
		Error:   fg(red).Bold(true),
		Warning: fg(yellow).Bold(true),

		FilePath: plain().Bold(true),
		Location: fg(gray),
		Class:    fg(blue),
		Hidden:   fg(magenta).Italic(true),
		Lang:     fg(green),
		Excerpt:  fg(silver),

		SummaryTitle: plain().Bold(true),
		SummaryValue: plain(),
		Success:      fg(green).Bold(true),
		Failure:      fg(red).Bold(true),

		TableHeader:    fg(silver).Bold(true),
		TableBorder:    fg(gray),
		TableOverride:  fg(yellow),
		TableDisabled:  fg(gray).Strikethrough(true),
		TableSeparator: fg(gray),

		Dim:  fg(gray),
		Bold: plain().Bold(true),
	}
}

// IsColorEnabled resolves a --color value for writer. "always" and "never"
// are absolute; anything else means auto: color only on a terminal and
// only when NO_COLOR is unset.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// TerminalWidth returns the column count of the terminal behind writer,
// or 100 when writer is not a terminal.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
