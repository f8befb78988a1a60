package runner

import (
	"maps"
	"slices"
)

// FileOutcome pairs a discovered path with its result or error.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result is nil if the file could not be processed.
	Result *FileResult

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int `json:"files_discovered" yaml:"files_discovered"`

	// FilesProcessed is the number of files annotated.
	FilesProcessed int `json:"files_processed" yaml:"files_processed"`

	// FilesSkipped is the number of files whose write was skipped.
	FilesSkipped int `json:"files_skipped" yaml:"files_skipped"`

	// FilesErrored is the number of files that could not be annotated.
	FilesErrored int `json:"files_errored" yaml:"files_errored"`

	// FilesWritten is the number of rendered files created or replaced.
	FilesWritten int `json:"files_written" yaml:"files_written"`

	// Spans is the total number of spans across all files.
	Spans int `json:"spans" yaml:"spans"`

	// HiddenSpans is the number of hidden spans among Spans.
	HiddenSpans int `json:"hidden_spans" yaml:"hidden_spans"`

	// SpansByClass maps span classes to counts.
	SpansByClass map[string]int `json:"spans_by_class" yaml:"spans_by_class"`
}

// Classes returns the classes seen in the run, sorted.
func (s Stats) Classes() []string {
	return slices.Sorted(maps.Keys(s.SpansByClass))
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasFailures reports whether any file could not be annotated.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0 || len(r.Errors) > 0
}

// NewResult aggregates outcomes produced outside Run, such as a document
// annotated from a host-supplied tree.
func NewResult(outcomes ...FileOutcome) *Result {
	result := &Result{
		Files: make([]FileOutcome, 0, len(outcomes)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(outcomes)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		SpansByClass: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++

	if outcome.Result.Skipped {
		r.Stats.FilesSkipped++
	}
	if outcome.Result.Written {
		r.Stats.FilesWritten++
	}

	r.Stats.Spans += len(outcome.Result.Spans)
	r.Stats.HiddenSpans += outcome.Result.HiddenCount()
	for class, count := range outcome.Result.ClassCounts() {
		r.Stats.SpansByClass[class] += count
	}
}
