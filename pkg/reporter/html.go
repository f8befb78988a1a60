package reporter

import (
	"bufio"
	"context"
	"fmt"
	"html"

	"github.com/yaklabco/mdspan/pkg/render"
	"github.com/yaklabco/mdspan/pkg/runner"
)

// HTMLReporter writes the annotated sources as HTML. A single file becomes a
// standalone page; several files become one <section> fragment each.
type HTMLReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewHTMLReporter creates a new HTML reporter.
func NewHTMLReporter(opts Options) *HTMLReporter {
	return &HTMLReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. Files that failed are reported as HTML
// comments so the remaining output stays usable.
func (r *HTMLReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer flush(r.bw, &err)

	if result == nil {
		return 0, nil
	}

	var succeeded []*runner.FileResult
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "<!-- %s: %s -->\n",
				html.EscapeString(displayPath(r.opts.WorkingDir, file.Path)),
				html.EscapeString(file.Error.Error()))
			continue
		}
		if file.Result != nil && file.Result.Document != nil {
			succeeded = append(succeeded, file.Result)
		}
	}

	if len(succeeded) == 1 {
		res := succeeded[0]
		if err := render.Page(r.bw, displayPath(r.opts.WorkingDir, res.Path), res.Document.Content, res.Spans); err != nil {
			return 0, err
		}
		return len(res.Spans), nil
	}

	var total int
	for _, res := range succeeded {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("report cancelled: %w", err)
		}

		fmt.Fprintf(r.bw, "<section class=\"mdspan-file\" data-path=\"%s\">\n",
			html.EscapeString(displayPath(r.opts.WorkingDir, res.Path)))
		if err := render.HTML(r.bw, res.Document.Content, res.Spans); err != nil {
			return total, err
		}
		fmt.Fprintln(r.bw, "</section>")
		total += len(res.Spans)
	}

	return total, nil
}
