package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdspan/pkg/annotate"
	"github.com/yaklabco/mdspan/pkg/mdast"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full lists every class override with its default value.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON(opts.Full)
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Markdown flavor: commonmark or gfm
flavor: gfm

# Annotation mode: decorate (classes only) or hide (also elide markers)
mode: decorate

# Output format: text, json, yaml, html or preview
# format: text

# Color output: auto, always or never
# color: auto

# Number of parallel workers (0 = auto)
# jobs: 0

# Guess the language of code blocks without an info string
# detect_languages: true

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"

# Back up rendered files replaced by --write
# backups:
#   enabled: false
#   mode: sidecar
`)

	buf.WriteString("\n# Span classes by node kind; an empty class turns decoration off\n")
	if !opts.Full {
		buf.WriteString("# classes:\n#   StrongEmphasis: cm-strong\n#   InlineCode: \"\"\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("classes:\n")
	defaults := annotate.DefaultClasses()
	for _, kind := range mdast.Kinds() {
		if class, ok := defaults[kind]; ok {
			fmt.Fprintf(&buf, "  %s: %s\n", kind, class)
		}
	}

	return buf.Bytes(), nil
}

// templateToJSON renders the defaults as JSON. JSON has no comments, so
// the template is the default configuration itself.
func templateToJSON(full bool) ([]byte, error) {
	cfg := NewConfig()
	if full {
		cfg.Classes = make(map[string]string)
		for kind, class := range annotate.DefaultClasses() {
			cfg.Classes[kind.String()] = class
		}
	}

	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(out, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# mdspan configuration
# See: https://github.com/yaklabco/mdspan`
}
