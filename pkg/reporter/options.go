package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/mdspan/pkg/annotate"
	"github.com/yaklabco/mdspan/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowSpans lists every span in text output. Without it only file
	// headers and the summary are printed.
	ShowSpans bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Compact uses minified output where applicable.
	Compact bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string

	// Classes are the class overrides used to theme the preview.
	Classes annotate.ClassTable
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatText,
		Color:       config.ColorAuto,
		ShowSpans:   true,
		ShowSummary: true,
	}
}

// OptionsFromConfig derives reporter options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	opts := DefaultOptions()
	if cfg == nil {
		return opts, nil
	}

	format, err := ParseFormat(string(cfg.Format))
	if err != nil {
		return opts, err
	}
	classes, err := cfg.ClassTable()
	if err != nil {
		return opts, err
	}

	opts.Format = format
	opts.Classes = classes
	if cfg.Color != "" {
		opts.Color = cfg.Color
	}
	return opts, nil
}
