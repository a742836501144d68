package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Liftover fields.
	FieldPair        = "pair"
	FieldDirection   = "direction"
	FieldPolicy      = "policy"
	FieldMode        = "mode"
	FieldFormat      = "format"
	FieldInputFormat = "input_format"
	FieldJobs        = "jobs"
	FieldContig      = "contig"
	FieldBlock       = "block"
	FieldOther       = "other"

	// Statistics fields.
	FieldBlocks   = "blocks"
	FieldContigs  = "contigs"
	FieldOverlaps = "overlaps"
	FieldRecords  = "records"
	FieldMapped   = "mapped"
	FieldSkipped  = "skipped"
	FieldDigest   = "digest"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
