// Package runner discovers Markdown files and annotates them concurrently.
package runner

// Options controls a multi-file run.
type Options struct {
	// Paths are the files and directories to annotate, relative to
	// WorkingDir unless absolute. Empty means the working directory.
	Paths []string

	// WorkingDir anchors relative Paths and the glob patterns. Empty means
	// the process working directory.
	WorkingDir string

	// Extensions are the lowercase, dot-prefixed suffixes of Markdown files
	// found while walking directories. Empty means DefaultExtensions.
	// Explicitly named files are annotated whatever their extension.
	Extensions []string

	// IncludeGlobs, when set, restrict walked files to those matching one
	// of the patterns.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and prune matching directories.
	ExcludeGlobs []string

	// FollowSymlinks descends into symlinked directories.
	FollowSymlinks bool

	// Jobs caps the concurrent workers; zero or less means one per CPU.
	Jobs int

	// Pipeline is applied to every file.
	Pipeline PipelineOptions
}

// DefaultExtensions returns the suffixes treated as Markdown.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) > 0 {
		return o.Extensions
	}
	return DefaultExtensions()
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) > 0 {
		return o.Paths
	}
	return []string{"."}
}
