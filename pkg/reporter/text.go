package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdspan/internal/ui/pretty"
	"github.com/yaklabco/mdspan/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer flush(r.bw, &err)

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(runner.Stats{}))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("report cancelled: %w", err)
		}
		total += r.reportFile(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// reportFile writes one file's header, spans and write status.
func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	path := displayPath(r.opts.WorkingDir, file.Path)

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}

	res := file.Result
	if res == nil {
		return 0
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(res.Spans)))

	if r.opts.ShowSpans && res.Document != nil {
		if len(res.Ranges) > 0 {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("  ranges: "+pretty.FormatRanges(res.Ranges)))
		}
		for _, span := range res.Spans {
			fmt.Fprint(r.bw, r.styles.FormatSpan(res.Document, span))
		}
	}

	switch {
	case res.Skipped:
		fmt.Fprintln(r.bw, r.styles.Warning.Render("  skipped: "+res.SkipReason))
	case res.Written:
		status := "  wrote " + displayPath(r.opts.WorkingDir, res.OutputPath)
		if res.BackupCreated {
			status += " (backup created)"
		}
		fmt.Fprintln(r.bw, r.styles.Success.Render(status))
	}

	if r.opts.ShowSpans {
		fmt.Fprintln(r.bw)
	}

	return len(res.Spans)
}
