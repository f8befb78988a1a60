package reporter

import (
	"github.com/yaklabco/mdspan/pkg/annotate"
	"github.com/yaklabco/mdspan/pkg/runner"
)

// outputVersion versions the JSON and YAML document layout.
const outputVersion = "1.0.0"

// Output is the document written by the JSON and YAML reporters.
type Output struct {
	Version string       `json:"version" yaml:"version"`
	Files   []FileOutput `json:"files" yaml:"files"`
	Summary runner.Stats `json:"summary" yaml:"summary"`
}

// FileOutput is the structured result of one file.
type FileOutput struct {
	Path       string       `json:"path" yaml:"path"`
	Ranges     []string     `json:"ranges,omitempty" yaml:"ranges,omitempty"`
	Spans      []SpanOutput `json:"spans" yaml:"spans"`
	OutputPath string       `json:"output,omitempty" yaml:"output,omitempty"`
	Written    bool         `json:"written,omitempty" yaml:"written,omitempty"`
	Backup     bool         `json:"backup,omitempty" yaml:"backup,omitempty"`
	Skipped    string       `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Error      string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// SpanOutput is a span with its line/column position.
type SpanOutput struct {
	annotate.Span `yaml:",inline"`

	StartLine   int `json:"start_line" yaml:"start_line"`
	StartColumn int `json:"start_column" yaml:"start_column"`
	EndLine     int `json:"end_line" yaml:"end_line"`
	EndColumn   int `json:"end_column" yaml:"end_column"`
}

// BuildOutput converts a run result into the structured output document.
func BuildOutput(result *runner.Result, workingDir string) *Output {
	output := &Output{
		Version: outputVersion,
		Files:   make([]FileOutput, 0),
	}
	if result == nil {
		return output
	}

	output.Summary = result.Stats
	output.Files = make([]FileOutput, 0, len(result.Files))

	for _, file := range result.Files {
		fileOutput := FileOutput{
			Path:  displayPath(workingDir, file.Path),
			Spans: make([]SpanOutput, 0),
		}

		if file.Error != nil {
			fileOutput.Error = file.Error.Error()
		}

		if res := file.Result; res != nil {
			for _, r := range res.Ranges {
				fileOutput.Ranges = append(fileOutput.Ranges, r.String())
			}
			for _, span := range res.Spans {
				spanOutput := SpanOutput{Span: span}
				if res.Document != nil {
					pos := res.Document.PositionOf(span.From, span.To)
					spanOutput.StartLine, spanOutput.StartColumn = pos.StartLine, pos.StartColumn
					spanOutput.EndLine, spanOutput.EndColumn = pos.EndLine, pos.EndColumn
				}
				fileOutput.Spans = append(fileOutput.Spans, spanOutput)
			}
			if res.OutputPath != "" {
				fileOutput.OutputPath = displayPath(workingDir, res.OutputPath)
			}
			fileOutput.Written = res.Written
			fileOutput.Backup = res.BackupCreated
			if res.Skipped {
				fileOutput.Skipped = res.SkipReason
			}
		}

		output.Files = append(output.Files, fileOutput)
	}

	return output
}
