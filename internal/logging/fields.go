package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldFlavor = "flavor"
	FieldMode   = "mode"
	FieldFormat = "format"
	FieldWrite  = "write"
	FieldJobs   = "jobs"

	// Annotation fields.
	FieldRanges = "ranges"
	FieldSpans  = "spans"
	FieldHidden = "hidden"
	FieldReason = "reason"
	FieldBackup = "backup"
	FieldTool   = "tool"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesErrored    = "files_errored"
	FieldFilesWritten    = "files_written"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
