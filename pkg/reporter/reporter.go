// Package reporter writes annotation results in text, JSON, YAML, HTML and
// terminal preview form.
package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/mdspan/pkg/runner"
)

// Reporter formats and writes annotation results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of spans reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatYAML:
		return NewYAMLReporter(opts), nil
	case FormatHTML:
		return NewHTMLReporter(opts), nil
	case FormatPreview:
		return NewPreviewReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// flush flushes bw into *err unless an earlier error is already set.
func flush(bw *bufio.Writer, err *error) {
	if flushErr := bw.Flush(); *err == nil && flushErr != nil {
		*err = fmt.Errorf("flush output: %w", flushErr)
	}
}

// displayPath makes path relative to workingDir when possible.
func displayPath(workingDir, path string) string {
	if workingDir == "" {
		return path
	}
	rel, err := filepath.Rel(workingDir, path)
	if err != nil || filepath.IsAbs(rel) || len(rel) >= 2 && rel[:2] == ".." {
		return path
	}
	return rel
}

// spanTotal counts the spans of every successful file.
func spanTotal(result *runner.Result) int {
	if result == nil {
		return 0
	}
	var total int
	for _, file := range result.Files {
		if file.Result != nil {
			total += len(file.Result.Spans)
		}
	}
	return total
}
