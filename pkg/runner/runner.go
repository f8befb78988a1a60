package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/mdspan/internal/logging"
)

// Runner annotates many files with a shared Pipeline.
type Runner struct {
	Pipeline *Pipeline
}

// New creates a Runner around pipeline.
func New(pipeline *Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and annotates them on a bounded
// worker pool. Outcomes keep discovery order, and a failing file does not
// stop the others. Files not reached before ctx is cancelled are left out
// of the result.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{Files: make([]FileOutcome, 0, len(files)), Stats: newStats()}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	// Each worker owns the slots of the indexes it receives.
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexes {
				if ctx.Err() != nil {
					continue
				}
				outcomes[idx] = r.annotate(ctx, files[idx], opts.Pipeline)
				done[idx] = true
			}
		}()
	}

feed:
	for idx := range files {
		select {
		case <-ctx.Done():
			break feed
		case indexes <- idx:
		}
	}
	close(indexes)
	wg.Wait()

	for idx, outcome := range outcomes {
		if done[idx] {
			result.accumulate(outcome)
		}
	}

	logger.Debug("run finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
	)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

// annotate runs the pipeline on one file with the path attached to the
// logger.
func (r *Runner) annotate(ctx context.Context, path string, opts PipelineOptions) FileOutcome {
	fileCtx := logging.WithFields(ctx, logging.FieldPath, path)
	logger := logging.FromContext(fileCtx)

	fr, err := r.Pipeline.ProcessFile(fileCtx, path, opts)
	if err != nil {
		logger.Debug("annotation failed", logging.FieldError, err)
		return FileOutcome{Path: path, Error: err}
	}

	logger.Debug("annotated", logging.FieldSpans, len(fr.Spans), logging.FieldHidden, fr.HiddenCount())
	return FileOutcome{Path: path, Result: fr}
}
