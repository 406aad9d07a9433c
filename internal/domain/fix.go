package domain

// FixKind names one step of the fixer.
type FixKind string

const (
	FixRenameVariable FixKind = "rename_variable"
	FixRenameFunction FixKind = "rename_function"
	FixRenameClass    FixKind = "rename_class"
	FixIndentation    FixKind = "indentation"
	FixRemoveImport   FixKind = "remove_import"
	FixBlankLine      FixKind = "blank_line"
	FixDocstring      FixKind = "docstring"
)

type AppliedFix struct {
	Kind        FixKind `json:"kind"`
	Line        int     `json:"line"`
	Description string  `json:"description"`
}

type SkippedFix struct {
	Kind   FixKind `json:"kind"`
	Line   int     `json:"line,omitempty"`
	Reason string  `json:"reason"`
}

// DiffStats summarises a unified diff.
type DiffStats struct {
	Hunks   int `json:"hunks"`
	Added   int `json:"added"`
	Changed int `json:"changed"`
	Deleted int `json:"deleted"`
}

// FixResult is the rewritten file plus a unified diff of the change.
type FixResult struct {
	File       string       `json:"file"`
	Original   string       `json:"-"`
	Fixed      string       `json:"-"`
	Diff       string       `json:"diff"`
	Applied    []AppliedFix `json:"applied"`
	Skipped    []SkippedFix `json:"skipped,omitempty"`
	Stats      DiffStats    `json:"stats"`
	Written    bool         `json:"written"`
	BackupPath string       `json:"backup_path,omitempty"`
}

// Changed reports whether the fixer produced a different text.
func (r *FixResult) Changed() bool { return r.Original != r.Fixed }

// BackupPolicy controls whether the fix service copies the file first.
type BackupPolicy string

const (
	BackupAuto   BackupPolicy = "auto"
	BackupAlways BackupPolicy = "always"
	BackupNever  BackupPolicy = "never"
)

type FixOptions struct {
	DryRun bool         `json:"dry_run"`
	Backup BackupPolicy `json:"backup"`
}
