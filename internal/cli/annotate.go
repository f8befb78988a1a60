package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdspan/internal/logging"
	"github.com/yaklabco/mdspan/pkg/annotate"
	"github.com/yaklabco/mdspan/pkg/config"
	"github.com/yaklabco/mdspan/pkg/fsutil"
	"github.com/yaklabco/mdspan/pkg/mdast"
	"github.com/yaklabco/mdspan/pkg/reporter"
	"github.com/yaklabco/mdspan/pkg/runner"
)

type annotateFlags struct {
	mode    string
	format  string
	flavor  string
	ranges  []string
	lines   string
	tree    string
	ignore  []string
	noSpans bool
	compact bool
}

func newAnnotateCommand() *cobra.Command {
	var cfg config.Config
	flags := &annotateFlags{}

	cmd := &cobra.Command{
		Use:   "annotate [paths...]",
		Short: "Compute styling spans for Markdown files",
		Long:  annotateLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnotate(cmd, args, &cfg, flags)
		},
	}

	addAnnotateFlags(cmd, &cfg, flags)

	return cmd
}

const annotateLongDescription = `Compute the styling spans of Markdown files.

By default, annotates all .md and .markdown files in the current directory
and subdirectories. Specify paths to annotate specific files or directories.

Only the visible ranges are annotated: the whole file unless --range or
--lines narrows it. In hide mode the block markers (heading marks, list
bullets, quote marks, code fences) and inline-code backticks are also
reported as hidden spans.

Examples:
  mdspan annotate                          # Annotate current directory
  mdspan annotate README.md --mode hide    # Include hidden markup spans
  mdspan annotate doc.md --lines 10:40     # Only lines 10 through 40
  mdspan annotate doc.md --range 0:200     # Only the first 200 bytes
  mdspan annotate doc.md --format json     # Spans as JSON
  mdspan annotate doc.md --format preview  # Styled terminal preview
  mdspan annotate doc.md --tree doc.json   # Use a tree from the host
  mdspan annotate docs/ --write            # Store doc.html next to doc.md`

func runAnnotate(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *annotateFlags) error {
	cliCfg.Mode = flags.mode
	cliCfg.Format = config.OutputFormat(flags.format)
	cliCfg.Flavor = config.Flavor(flags.flavor)
	cliCfg.Ignore = flags.ignore

	cfg, workDir, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	pipelineOpts, err := runner.PipelineOptionsFromConfig(cfg)
	if err != nil {
		return err
	}
	if err := applyRangeFlags(&pipelineOpts, flags); err != nil {
		return err
	}

	pipeline, err := runner.PipelineFromConfig(cfg)
	if err != nil {
		return err
	}

	var result *runner.Result
	if flags.tree != "" {
		result, err = annotateHostTree(ctx, pipeline, args, flags.tree, pipelineOpts)
	} else {
		runOpts := runner.Options{
			Paths:          args,
			WorkingDir:     workDir,
			Extensions:     runner.DefaultExtensions(),
			ExcludeGlobs:   cfg.Ignore,
			FollowSymlinks: cfg.FollowSymlinks,
			Jobs:           cfg.Jobs,
			Pipeline:       pipelineOpts,
		}

		logger.Debug("starting annotation run",
			logging.FieldPaths, runOpts.Paths,
			logging.FieldWorkingDir, runOpts.WorkingDir,
			logging.FieldJobs, runOpts.Jobs,
			logging.FieldWrite, pipelineOpts.Write,
		)

		result, err = runner.New(pipeline).Run(ctx, runOpts)
	}
	if err != nil {
		return fmt.Errorf("annotation run failed: %w", err)
	}

	repOpts, err := reporter.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}
	repOpts.Writer = cmd.OutOrStdout()
	repOpts.ErrorWriter = cmd.ErrOrStderr()
	repOpts.WorkingDir = workDir
	repOpts.ShowSpans = !flags.noSpans
	repOpts.Compact = flags.compact

	rep, err := reporter.New(repOpts)
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrAnnotationFailed
	}
	return nil
}

// applyRangeFlags turns --range and --lines into pipeline options.
func applyRangeFlags(opts *runner.PipelineOptions, flags *annotateFlags) error {
	if len(flags.ranges) > 0 && flags.lines != "" {
		return fmt.Errorf("%w: --range and --lines are mutually exclusive", ErrInvalidUsage)
	}

	for _, text := range flags.ranges {
		r, err := annotate.ParseRange(text)
		if err != nil {
			return fmt.Errorf("%w: --range: %w", ErrInvalidUsage, err)
		}
		opts.Ranges = append(opts.Ranges, r)
	}
	if err := annotate.ValidateRanges(opts.Ranges); err != nil {
		return fmt.Errorf("%w: --range: %w", ErrInvalidUsage, err)
	}

	if flags.lines != "" {
		first, last, err := annotate.ParseLines(flags.lines)
		if err != nil {
			return fmt.Errorf("%w: --lines: %w", ErrInvalidUsage, err)
		}
		opts.Lines = &runner.LineSpan{First: first, Last: last}
	}

	return nil
}

// annotateHostTree annotates a single source file against a serialized tree
// instead of parsing it.
func annotateHostTree(
	ctx context.Context,
	pipeline *runner.Pipeline,
	args []string,
	treePath string,
	opts runner.PipelineOptions,
) (*runner.Result, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: --tree needs exactly one source file", ErrInvalidUsage)
	}
	if opts.Write {
		return nil, fmt.Errorf("%w: --tree cannot be combined with --write", ErrInvalidUsage)
	}

	content, _, err := fsutil.ReadFile(ctx, args[0])
	if err != nil {
		return nil, err
	}
	data, _, err := fsutil.ReadFile(ctx, treePath)
	if err != nil {
		return nil, err
	}

	root, err := mdast.DecodeTree(data, treeFormatFor(treePath))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", treePath, err)
	}
	if err := mdast.Validate(root); err != nil {
		return nil, fmt.Errorf("%s: %w", treePath, err)
	}

	doc := mdast.NewDocument(args[0], content)
	doc.Root = root

	outcome := runner.FileOutcome{Path: args[0]}
	outcome.Result, outcome.Error = pipeline.AnnotateDocument(ctx, doc, opts)
	return runner.NewResult(outcome), nil
}

// treeFormatFor picks the tree encoding from a file extension.
func treeFormatFor(path string) mdast.TreeFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return mdast.TreeYAML
	default:
		return mdast.TreeJSON
	}
}

func addAnnotateFlags(cmd *cobra.Command, cfg *config.Config, flags *annotateFlags) {
	cmd.Flags().StringVar(&flags.mode, "mode", "", "annotation mode: decorate, hide (default decorate)")
	cmd.Flags().StringArrayVar(&flags.ranges, "range", nil, "visible byte range from:to (repeatable, ascending)")
	cmd.Flags().StringVar(&flags.lines, "lines", "", "visible 1-based line window first:last")
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json, yaml, html, preview")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "Markdown flavor: commonmark, gfm (default gfm)")
	cmd.Flags().StringVar(&flags.tree, "tree", "", "annotate against a JSON or YAML syntax tree instead of parsing")
	cmd.Flags().BoolVar(&cfg.Write, "write", false, "store the rendered HTML next to each source file")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "do not back up replaced HTML files")
	cmd.Flags().BoolVar(&cfg.FollowSymlinks, "follow-symlinks", false, "traverse symlinked directories")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.noSpans, "no-spans", false, "list files and totals only (text format)")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output where applicable")
}
