package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdspan/pkg/runner"
)

// JSONReporter writes one JSON document holding every file's spans and a
// summary. Compact drops the indentation.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts, bw: bufio.NewWriterSize(opts.Writer, bufWriterSize)}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer flush(r.bw, &err)

	enc := json.NewEncoder(r.bw)
	enc.SetEscapeHTML(false)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(BuildOutput(result, r.opts.WorkingDir)); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}
	return spanTotal(result), nil
}
