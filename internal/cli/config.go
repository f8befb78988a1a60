package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdspan/internal/configloader"
	"github.com/yaklabco/mdspan/internal/logging"
	"github.com/yaklabco/mdspan/pkg/config"
)

// commandContext returns the command's context, never nil.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the layered configuration with cliCfg on top and
// returns it together with the working directory.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	loadResult, workDir, err := resolveConfig(cmd, cliCfg)
	if err != nil {
		return nil, "", err
	}

	cfg := loadResult.Config
	logging.FromContext(commandContext(cmd)).Debug("configuration loaded",
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldMode, cfg.Mode,
		logging.FieldFormat, cfg.Format,
		logging.FieldJobs, cfg.Jobs,
	)

	return cfg, workDir, nil
}

func resolveConfig(cmd *cobra.Command, cliCfg *config.Config) (*configloader.LoadResult, string, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	if cmd.Flags().Changed("color") {
		color, err := cmd.Flags().GetString("color")
		if err != nil {
			return nil, "", fmt.Errorf("get color flag: %w", err)
		}
		cliCfg.Color = color
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return loadResult, workDir, nil
}

func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration mdspan would run with, after merging the system,
user and project files, MDSPAN_* variables and the --config file.

Examples:
  mdspan config                    # Show the merged settings
  mdspan config --config ci.yml    # Include an explicit file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loadResult, _, err := resolveConfig(cmd, &config.Config{})
			if err != nil {
				return err
			}

			header := "# no configuration files found"
			if len(loadResult.LoadedFrom) > 0 {
				header = "# loaded from:\n#   " + strings.Join(loadResult.LoadedFrom, "\n#   ")
			}
			data, err := loadResult.Config.ToYAMLWithHeader(header)
			if err != nil {
				return fmt.Errorf("encode configuration: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
