package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdspan/internal/configloader"
	"github.com/yaklabco/mdspan/internal/logging"
	"github.com/yaklabco/mdspan/pkg/config"
	"github.com/yaklabco/mdspan/pkg/fsutil"
)

const (
	configFilePermissions = 0o644
	configDirPermissions  = 0o755
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
	user   bool
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new mdspan configuration file",
		Long: `Create a new .mdspan.yml configuration file in the current directory
with sensible defaults. The file sets the flavor, annotation mode and output
format, and can override the class of any decorated node kind.

Examples:
  mdspan init                      Create minimal .mdspan.yml
  mdspan init --full               List every class override with its default
  mdspan init --format json        Create .mdspan.json instead
  mdspan init --output custom.yml  Write to a custom file path
  mdspan init --user               Create the per-user config file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with every class documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .mdspan.yml or .mdspan.json)")
	cmd.Flags().BoolVar(&flags.user, "user", false, "Write the per-user config under the XDG config directory")
	cmd.MarkFlagsMutuallyExclusive("output", "user")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", ErrInvalidUsage, flags.format)
	}

	outputPath := flags.output
	switch {
	case flags.user:
		if flags.format != "yaml" {
			return fmt.Errorf("%w: the user config must be yaml", ErrInvalidUsage)
		}
		outputPath = configloader.UserConfigPath()
	case outputPath == "" && flags.format == "json":
		outputPath = ".mdspan.json"
	case outputPath == "":
		outputPath = ".mdspan.yml"
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), configDirPermissions); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	changed, err := fsutil.WriteAtomicIfChanged(commandContext(cmd), absPath, content, configFilePermissions)
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if !changed {
		logger.Info("configuration file already up to date", logging.FieldPath, outputPath)
		return nil
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.full {
		logger.Info("full template lists every class with its default")
	}
	logger.Info("run 'mdspan classes' to see the effective class table")

	return nil
}
