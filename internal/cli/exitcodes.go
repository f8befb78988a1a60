package cli

import (
	"errors"

	"github.com/yaklabco/mdspan/internal/configloader"
	"github.com/yaklabco/mdspan/pkg/annotate"
	"github.com/yaklabco/mdspan/pkg/fsutil"
	"github.com/yaklabco/mdspan/pkg/runner"
)

// Exit codes for mdspan.
const (
	// ExitSuccess indicates every file was annotated.
	ExitSuccess = 0

	// ExitAnnotationFailed indicates at least one file could not be annotated.
	ExitAnnotationFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates a broken internal invariant, such as the
	// annotator producing spans out of order.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrAnnotationFailed is returned when some files could not be
	// annotated. The per-file errors have already been reported.
	ErrAnnotationFailed = errors.New("annotation failed")

	// ErrInvalidUsage marks flag and argument errors.
	ErrInvalidUsage = errors.New("invalid usage")
)

// ExitCodeFromResult determines the exit code of a finished run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasFailures() {
		return ExitAnnotationFailed
	}
	return ExitSuccess
}

// ExitCodeFromError maps a command error to a process exit code.
func ExitCodeFromError(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrAnnotationFailed):
		return ExitAnnotationFailed
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, annotate.ErrOutOfOrder):
		return ExitInternalError
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, runner.ErrFileNotFound), errors.Is(err, runner.ErrPermissionDenied):
		return ExitIOError
	default:
		return ExitAnnotationFailed
	}
}
