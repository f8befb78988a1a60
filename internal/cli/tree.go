package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdspan/pkg/config"
	"github.com/yaklabco/mdspan/pkg/fsutil"
	"github.com/yaklabco/mdspan/pkg/mdast"
	"github.com/yaklabco/mdspan/pkg/runner"
)

type treeFlags struct {
	format string
	flavor string
}

func newTreeCommand() *cobra.Command {
	flags := &treeFlags{}

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Print the syntax tree the annotator consumes",
		Long: `Parse a Markdown file and print its syntax tree as JSON or YAML.

Every node carries its kind and half-open byte range; marker nodes
(HeaderMark, CodeMark, ListMark, QuoteMark) cover the markup
that hide mode reports as hidden. The output can be edited and passed back
with "mdspan annotate --tree". Reads standard input when no file is given.

Examples:
  mdspan tree README.md
  mdspan tree README.md --format yaml
  cat notes.md | mdspan tree`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "json", "tree encoding: json, yaml")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "Markdown flavor: commonmark, gfm")

	return cmd
}

func runTree(cmd *cobra.Command, args []string, flags *treeFlags) error {
	format := mdast.TreeFormat(flags.format)
	if format != mdast.TreeJSON && format != mdast.TreeYAML {
		return fmt.Errorf("%w: unknown tree format %q; must be json or yaml", ErrInvalidUsage, flags.format)
	}

	cfg, _, err := loadConfig(cmd, &config.Config{Flavor: config.Flavor(flags.flavor)})
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)

	var path string
	var content []byte
	if len(args) == 1 && args[0] != "-" {
		path = args[0]
		content, _, err = fsutil.ReadFile(ctx, path)
	} else {
		content, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	pipeline, err := runner.PipelineFromConfig(cfg)
	if err != nil {
		return err
	}

	doc, err := pipeline.Parser.Parse(ctx, path, content)
	if err != nil {
		return fmt.Errorf("%w: %w", runner.ErrParseFailure, err)
	}

	data, err := mdast.EncodeTree(doc.Root, format)
	if err != nil {
		return err
	}

	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return fmt.Errorf("write tree: %w", err)
	}
	return nil
}
