package annotate

import "github.com/yaklabco/mdspan/pkg/mdast"

// ErrMalformedTree is returned by Annotate for a visited node whose range
// is inverted or escapes its parent.
var ErrMalformedTree = mdast.ErrMalformedTree

// MalformedTreeError carries the offending node's kind and offsets.
type MalformedTreeError = mdast.MalformedTreeError
