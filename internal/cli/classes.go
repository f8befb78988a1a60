package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdspan/internal/ui/pretty"
	"github.com/yaklabco/mdspan/pkg/config"
)

func newClassesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "classes",
		Short: "List the span class of every decorated node kind",
		Long: `List every node kind that receives a span class, with the class it
gets after configuration overrides are applied.

Override a class in .mdspan.yml:

  classes:
    StrongEmphasis: bold
    Emphasis: ""        # an empty class turns decoration off`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClasses(cmd, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json, yaml")

	return cmd
}

func runClasses(cmd *cobra.Command, format string) error {
	cfg, _, err := loadConfig(cmd, &config.Config{})
	if err != nil {
		return err
	}

	overrides, err := cfg.ClassTable()
	if err != nil {
		return err
	}
	rows := pretty.ClassRows(overrides)
	out := cmd.OutOrStdout()

	switch format {
	case "text", "":
		colorEnabled := pretty.IsColorEnabled(cfg.Color, out)
		formatter := pretty.NewTableFormatter(pretty.NewStyles(colorEnabled), pretty.TerminalWidth(out))
		_, err = fmt.Fprint(out, formatter.FormatClassTable(rows))
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		err = encoder.Encode(classDocs(rows))
	case "yaml":
		err = yaml.NewEncoder(out).Encode(classDocs(rows))
	default:
		return fmt.Errorf("%w: unknown format %q; must be text, json or yaml", ErrInvalidUsage, format)
	}
	if err != nil {
		return fmt.Errorf("write classes: %w", err)
	}
	return nil
}

type classDoc struct {
	Kind   string `json:"kind" yaml:"kind"`
	Class  string `json:"class" yaml:"class"`
	Source string `json:"source" yaml:"source"`
}

func classDocs(rows []pretty.ClassRow) []classDoc {
	docs := make([]classDoc, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, classDoc(row))
	}
	return docs
}
