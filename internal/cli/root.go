// Package cli provides the Cobra command structure for mdspan.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdspan/internal/configloader"
	"github.com/yaklabco/mdspan/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdspan command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdspan",
		Short: "Styling spans for Markdown source",
		Long: `mdspan computes the styling spans a live-preview Markdown editor needs:
which byte ranges of the source get which CSS class, and which markup
characters are hidden.

It parses CommonMark or GitHub Flavored Markdown (GFM), annotates only the
visible ranges you ask for, and prints the spans as text, JSON or YAML, as
HTML, or as a styled terminal preview. The same annotator is available to
editors and agents as an MCP tool server.` + environmentHelp(),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newAnnotateCommand())
	rootCmd.AddCommand(newTreeCommand())
	rootCmd.AddCommand(newClassesCommand())
	rootCmd.AddCommand(newMCPCommand(info))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// environmentHelp lists the MDSPAN_* variables for the root help text.
func environmentHelp() string {
	vars := configloader.ListEnvVars()

	width := 0
	for _, v := range vars {
		width = max(width, len(v.Name))
	}

	var b strings.Builder
	b.WriteString("\n\nEnvironment (overrides config files, overridden by flags):\n")
	for _, v := range vars {
		fmt.Fprintf(&b, "  %-*s  %s\n", width, v.Name, v.Description)
	}
	return b.String()
}
