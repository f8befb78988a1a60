package cli

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdspan/internal/ui/pretty"
)

// flagLinePattern splits a pflag usage line into indent, flag names with
// the value type, and the description.
var flagLinePattern = regexp.MustCompile(`^(\s*)(\S.*?)\s{2,}(\S.*)$`)

// HelpFormatter renders Cobra help and usage text with the shared CLI styles.
type HelpFormatter struct {
	styles *pretty.Styles
}

// NewHelpFormatter creates a help formatter for writer under colorMode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))}
}

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":    h.styles.SummaryTitle.Render,
		"command":    h.styles.FilePath.Render,
		"subcommand": h.styles.Class.Render,
		"dim":        h.styles.Dim.Render,
		"flags":      h.FormatFlags,
		"long":       h.FormatLong,
		"join":       strings.Join,
		"rpad":       rpad,
	}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable }}
  {{ command .UseLine }}{{ end }}
{{- if .HasAvailableSubCommands }}
  {{ command .CommandPath }} [command]{{ end }}

{{- if gt (len .Aliases) 0 }}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end }}

{{- if .HasExample }}

{{ heading "Examples:" }}
{{ long .Example }}
{{- end }}

{{- if .HasAvailableSubCommands }}

{{ heading "Commands:" }}
{{- range .Commands }}{{ if (or .IsAvailableCommand (eq .Name "help")) }}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{ end }}{{ end }}
{{- end }}

{{- if .HasAvailableLocalFlags }}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end }}

{{- if .HasAvailableInheritedFlags }}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end }}

{{- if .HasAvailableSubCommands }}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end }}
`

const helpTemplate = `{{ with (or .Long .Short) }}{{ long . }}

{{ end }}` + usageTemplate

// FormatLong styles a command description. Example invocations indented
// under the description keep their text, and their trailing "# comment"
// is dimmed.
func (h *HelpFormatter) FormatLong(text string) string {
	lines := strings.Split(strings.TrimRight(text, " \t\n"), "\n")
	for idx, line := range lines {
		line = strings.TrimRight(line, " \t")
		trimmed := strings.TrimLeft(line, " ")
		if !strings.HasPrefix(trimmed, "mdspan ") && !strings.HasPrefix(trimmed, "cat ") {
			lines[idx] = line
			continue
		}

		indent := line[:len(line)-len(trimmed)]
		invocation, comment, found := strings.Cut(trimmed, "#")
		styled := indent + h.styles.FilePath.Render(strings.TrimRight(invocation, " "))
		if found {
			pad := invocation[len(strings.TrimRight(invocation, " ")):]
			styled += pad + h.styles.Dim.Render("#"+comment)
		}
		lines[idx] = styled
	}
	return strings.Join(lines, "\n")
}

// FormatFlags styles the FlagUsages output of a pflag set: flag names
// in the class color, value types and defaults dimmed.
func (h *HelpFormatter) FormatFlags(set interface{ FlagUsages() string }) string {
	usages := strings.TrimRight(set.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for idx, line := range lines {
		match := flagLinePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		lines[idx] = match[1] + h.formatFlagNames(match[2]) + "   " + match[3]
	}
	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) formatFlagNames(names string) string {
	tokens := strings.Fields(names)
	for idx, token := range tokens {
		if !strings.HasPrefix(token, "-") {
			tokens[idx] = h.styles.Dim.Render(token)
			continue
		}
		name, comma := strings.CutSuffix(token, ",")
		tokens[idx] = h.styles.Class.Render(name)
		if comma {
			tokens[idx] += ","
		}
	}
	return strings.Join(tokens, " ")
}

// ApplyToCommand installs the styled help and usage functions on cmd.
// Subcommands inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	usage := template.Must(template.New("usage").Funcs(h.funcs()).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(h.funcs()).Parse(helpTemplate))

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		if err := usage.Execute(command.OutOrStderr(), command); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}
