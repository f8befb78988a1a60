package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdspan/internal/ui/pretty"
	"github.com/yaklabco/mdspan/pkg/render"
	"github.com/yaklabco/mdspan/pkg/runner"
)

// PreviewReporter prints each file as it would look in a live editor:
// hidden markup elided and classes shown as terminal styles.
type PreviewReporter struct {
	opts   Options
	color  bool
	styles *pretty.Styles
	theme  render.Theme
	bw     *bufio.Writer
}

// NewPreviewReporter creates a new preview reporter.
func NewPreviewReporter(opts Options) *PreviewReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &PreviewReporter{
		opts:   opts,
		color:  colorEnabled,
		styles: pretty.NewStyles(colorEnabled),
		theme:  render.NewTheme(opts.Classes),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *PreviewReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer flush(r.bw, &err)

	if result == nil {
		return 0, nil
	}

	multiple := len(result.Files) > 1

	var total int
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("report cancelled: %w", err)
		}

		path := displayPath(r.opts.WorkingDir, file.Path)
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)))
			continue
		}

		res := file.Result
		if res == nil || res.Document == nil {
			continue
		}

		if multiple {
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(res.Spans)))
		}
		if err := render.TerminalWith(r.bw, res.Document.Content, res.Spans, render.TerminalOptions{
			Color: r.color,
			Theme: r.theme,
		}); err != nil {
			return total, err
		}
		if multiple {
			fmt.Fprintln(r.bw)
		}
		total += len(res.Spans)
	}

	return total, nil
}
