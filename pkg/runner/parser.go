package runner

import (
	"context"

	"github.com/yaklabco/mdspan/pkg/mdast"
)

// Parser parses Markdown content into a Document.
//
// The runner defines this interface in the consumer package; parser/goldmark
// provides the implementation used by the CLI.
//
// Implementations must be:
//   - deterministic for a given (path, content) pair,
//   - safe for concurrent use by the runner's workers,
//   - side-effect free (no I/O, no global state mutation).
type Parser interface {
	// Parse converts raw Markdown bytes into a Document whose Root satisfies
	// mdast.Validate. content must not be mutated. On error no partial
	// document is returned.
	Parse(ctx context.Context, path string, content []byte) (*mdast.Document, error)
}
