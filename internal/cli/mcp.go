package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdspan/internal/logging"
	"github.com/yaklabco/mdspan/pkg/config"
	"github.com/yaklabco/mdspan/pkg/mcpserver"
)

func newMCPCommand(info BuildInfo) *cobra.Command {
	var flavor string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the annotator as MCP tools over stdio",
		Long: `Run a Model Context Protocol server on standard input and output.

Tools:
  annotate_markdown  spans for a visible byte range (optionally from a host tree)
  parse_markdown     the syntax tree as JSON or YAML
  render_markdown    annotated HTML

Configuration (flavor, class overrides) applies to every call. Logs go to
standard error so they never mix with protocol messages.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig(cmd, &config.Config{Flavor: config.Flavor(flavor)})
			if err != nil {
				return err
			}

			opts, err := mcpserver.OptionsFromConfig(cfg, info.Version)
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)
			logging.FromContext(ctx).Debug("starting tool server", logging.FieldFlavor, opts.Flavor)

			return mcpserver.Serve(ctx, mcpserver.New(opts), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&flavor, "flavor", "", "default Markdown flavor: commonmark, gfm")

	return cmd
}
