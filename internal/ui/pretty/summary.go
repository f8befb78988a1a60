package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdspan/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "42 spans (12 hidden) in 3 files, 3 written, 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesProcessed == 0 && stats.FilesErrored == 0 {
		return s.Dim.Render("No files to annotate.") + "\n"
	}

	main := fmt.Sprintf("%d %s", stats.Spans, plural(stats.Spans, "span", "spans"))
	if stats.HiddenSpans > 0 {
		main += s.Dim.Render(fmt.Sprintf(" (%d hidden)", stats.HiddenSpans))
	}
	main += fmt.Sprintf(" in %d %s", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))

	parts := []string{main}
	if stats.FilesWritten > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d written", stats.FilesWritten)))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block with the span
// count of every class.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files annotated:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}
	if stats.FilesWritten > 0 {
		builder.WriteString("  Files written:     " +
			s.Success.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}
	if stats.FilesSkipped > 0 {
		builder.WriteString("  Files skipped:     " +
			s.Warning.Render(strconv.Itoa(stats.FilesSkipped)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Total spans:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.Spans)) + "\n")
	builder.WriteString("    hidden           " +
		s.Hidden.Render(strconv.Itoa(stats.HiddenSpans)) + "\n")

	for _, class := range stats.Classes() {
		builder.WriteString("    " + s.Class.Render(fmt.Sprintf("%-17s", class)) +
			s.SummaryValue.Render(strconv.Itoa(stats.SpansByClass[class])) + "\n")
	}

	builder.WriteString("\n")

	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render(fmt.Sprintf("Annotation failed for %d %s",
			stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles))))
	} else {
		builder.WriteString(s.Success.Render("Annotation complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}
