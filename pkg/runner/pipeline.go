package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/mdspan/internal/logging"
	"github.com/yaklabco/mdspan/pkg/annotate"
	"github.com/yaklabco/mdspan/pkg/config"
	"github.com/yaklabco/mdspan/pkg/fsutil"
	"github.com/yaklabco/mdspan/pkg/mdast"
	"github.com/yaklabco/mdspan/pkg/parser/goldmark"
	"github.com/yaklabco/mdspan/pkg/render"
)

// OutputExtension is the extension of rendered files stored by --write.
const OutputExtension = ".html"

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrParseFailure indicates a parsing error.
	ErrParseFailure = errors.New("parse failure")

	// ErrAnnotateFailure indicates the tree or the ranges were rejected.
	ErrAnnotateFailure = errors.New("annotate failure")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// LineSpan selects 1-based lines First through Last.
type LineSpan struct {
	First int
	Last  int
}

// FileResult is the outcome of annotating a single file.
type FileResult struct {
	// Path is the file path that was processed.
	Path string

	// Info fingerprints the source as it was read.
	Info *fsutil.FileInfo

	// Document is the parsed source.
	Document *mdast.Document

	// Ranges are the visible ranges the spans were computed for.
	Ranges []annotate.Range

	// Spans are the annotation results, sorted by From then To.
	Spans []annotate.Span

	// OutputPath is where rendered HTML goes in write mode.
	OutputPath string

	// Written is true if the rendered file was created or replaced.
	Written bool

	// BackupCreated is true if the previous rendered file was backed up.
	BackupCreated bool

	// Skipped is true if writing was skipped.
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string
}

// HiddenCount returns the number of hidden spans.
func (fr *FileResult) HiddenCount() int {
	count := 0
	for _, span := range fr.Spans {
		if span.Hidden {
			count++
		}
	}
	return count
}

// ClassCounts returns the number of spans per class.
func (fr *FileResult) ClassCounts() map[string]int {
	counts := make(map[string]int)
	for _, span := range fr.Spans {
		if !span.Hidden {
			counts[span.Class]++
		}
	}
	return counts
}

// Summary returns a human-readable summary of the result.
func (fr *FileResult) Summary() string {
	switch {
	case fr.Skipped:
		return "skipped: " + fr.SkipReason
	case fr.Written && fr.BackupCreated:
		return "written (backup created)"
	case fr.Written:
		return "written"
	default:
		return fmt.Sprintf("%d spans", len(fr.Spans))
	}
}

// PipelineOptions controls how each file is annotated.
type PipelineOptions struct {
	// Mode selects decorate or decorate+hide.
	Mode annotate.Mode

	// Ranges are the visible byte ranges. Empty means the whole file.
	Ranges []annotate.Range

	// Lines restricts annotation to a line window. It wins over Ranges.
	Lines *LineSpan

	// Write stores rendered HTML next to each source.
	Write bool

	// Backup configures backups of replaced rendered files.
	Backup fsutil.BackupConfig

	// StrictRaceDetection re-hashes the source before writing.
	// When false, only mod time and size are checked.
	StrictRaceDetection bool
}

// DefaultPipelineOptions returns sensible defaults.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Mode:                annotate.ModeDecorate,
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
	}
}

// Pipeline parses and annotates one file at a time. It is safe for
// concurrent use when its Parser is.
type Pipeline struct {
	Parser    Parser
	Annotator *annotate.Annotator
}

// NewPipeline creates a pipeline. A nil annotator uses the default classes.
func NewPipeline(parser Parser, annotator *annotate.Annotator) *Pipeline {
	if annotator == nil {
		annotator = annotate.New(nil)
	}
	return &Pipeline{Parser: parser, Annotator: annotator}
}

// PipelineFromConfig builds a goldmark-backed pipeline from cfg.
func PipelineFromConfig(cfg *config.Config) (*Pipeline, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	classes, err := cfg.ClassTable()
	if err != nil {
		return nil, err
	}

	parser := goldmark.New(string(cfg.Flavor), goldmark.WithLanguageDetection(cfg.LanguageDetection()))
	return NewPipeline(parser, annotate.New(classes)), nil
}

// BackupConfigFromConfig creates an fsutil.BackupConfig from config.Config.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.BackupsEnabled(),
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// PipelineOptionsFromConfig creates PipelineOptions from config.Config.
// Ranges and lines come from the command line, not from config.
func PipelineOptionsFromConfig(cfg *config.Config) (PipelineOptions, error) {
	opts := DefaultPipelineOptions()
	if cfg == nil {
		return opts, nil
	}

	mode, err := cfg.AnnotateMode()
	if err != nil {
		return opts, err
	}
	opts.Mode = mode
	opts.Write = cfg.Write
	opts.Backup = BackupConfigFromConfig(cfg)
	return opts, nil
}

// ProcessFile reads, parses and annotates the file at path.
//
// In write mode the rendered page is then stored next to the source:
//  1. Render the page in memory.
//  2. Skip if the source changed since it was read.
//  3. Leave identical output untouched.
//  4. Back up the previous rendition (if enabled).
//  5. Write the page atomically.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts PipelineOptions) (*FileResult, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.ProcessContent(ctx, path, content, opts)
	if err != nil {
		return nil, err
	}
	result.Info = info

	if !opts.Write {
		return result, nil
	}

	result.OutputPath = fsutil.OutputPath(path, OutputExtension)

	var page bytes.Buffer
	if err := render.Page(&page, filepath.Base(path), result.Document.Content, result.Spans); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}

	modified, err := fsutil.CheckModified(ctx, info, opts.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "source modified during processing"
		logging.FromContext(ctx).Warn("skipping write", logging.FieldReason, result.SkipReason)
		return result, nil
	}

	same, err := fsutil.SameContent(result.OutputPath, page.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	if same {
		return result, nil
	}

	result.BackupCreated, err = fsutil.CreateBackup(ctx, result.OutputPath, opts.Backup)
	if err != nil {
		return nil, fmt.Errorf("create backup: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, result.OutputPath, page.Bytes(), fsutil.DefaultFileMode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true
	logging.FromContext(ctx).Debug("wrote page",
		logging.FieldOutput, result.OutputPath, logging.FieldBackup, result.BackupCreated)

	return result, nil
}

// ProcessContent parses and annotates in-memory content without file I/O.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	opts PipelineOptions,
) (*FileResult, error) {
	doc, err := p.Parser.Parse(ctx, path, content)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("processing cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}

	return p.AnnotateDocument(ctx, doc, opts)
}

// AnnotateDocument annotates an already parsed document, such as a tree
// supplied by the host instead of the built-in parser.
func (p *Pipeline) AnnotateDocument(ctx context.Context, doc *mdast.Document, opts PipelineOptions) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing cancelled: %w", err)
	}

	ranges, err := resolveRanges(doc, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnnotateFailure, err)
	}

	spans, err := p.Annotator.Annotate(doc.Root, ranges, opts.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAnnotateFailure, doc.Path, err)
	}

	return &FileResult{
		Path:     doc.Path,
		Document: doc,
		Ranges:   ranges,
		Spans:    spans,
	}, nil
}

// resolveRanges picks the visible ranges: a line window, explicit ranges,
// or the whole document.
func resolveRanges(doc *mdast.Document, opts PipelineOptions) ([]annotate.Range, error) {
	if opts.Lines != nil {
		r, err := annotate.LineRange(doc, opts.Lines.First, opts.Lines.Last)
		if err != nil {
			return nil, err
		}
		return []annotate.Range{r}, nil
	}

	if len(opts.Ranges) > 0 {
		if err := annotate.ValidateRanges(opts.Ranges); err != nil {
			return nil, err
		}
		return opts.Ranges, nil
	}

	return []annotate.Range{annotate.FullRange(doc)}, nil
}

// categorizeError wraps an error with the appropriate pipeline error type.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrParseFailure) ||
		errors.Is(err, ErrAnnotateFailure) ||
		errors.Is(err, ErrWriteFailure)
}
