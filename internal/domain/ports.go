package domain

import (
	"context"

	"github.com/abdidvp/pystyle/internal/domain/syntax"
)

// Parser turns Python source into a syntax tree. Source that does not parse
// yields an error wrapping ErrParseFailure.
type Parser interface {
	Parse(ctx context.Context, content []byte) (*syntax.Module, error)
}

// SourceReader validates a path and returns its text with newlines normalised.
type SourceReader interface {
	Read(path string) (string, error)
}

// FileScanner finds Python files under a directory.
type FileScanner interface {
	Scan(root string) ([]string, error)
}

// ConfigLoader resolves the configuration that applies to a path.
type ConfigLoader interface {
	Load(path string) (Config, error)
}

// ExternalLinter runs a third-party linter on one file.
type ExternalLinter interface {
	Name() string
	Lint(ctx context.Context, path string) ([]ExternalFinding, error)
}

// ExternalFormatter runs a third-party formatter on one file.
type ExternalFormatter interface {
	Name() string
	Preview(ctx context.Context, path string) (string, error)
	Apply(ctx context.Context, path string) error
}

// ToolProvider builds the external tools named by a config.
type ToolProvider interface {
	Linter(cfg ExternalConfig) ExternalLinter
	Formatter(cfg ExternalConfig) ExternalFormatter
}

// MemoryProbe reports the resident set size of the current process.
type MemoryProbe interface {
	RSS() (uint64, error)
}

// GitInfo answers questions about the repository a file lives in.
type GitInfo interface {
	IsGitRepo(path string) bool
	CommitHash(path string) (string, error)
	// IsPristine reports whether path is tracked and unmodified.
	IsPristine(path string) (bool, error)
}

// CompareHistory persists compare runs next to the checked file.
type CompareHistory interface {
	Save(dir string, entry HistoryEntry) error
	Load(dir string) ([]HistoryEntry, error)
}

// FileWriter replaces file contents and takes backups.
type FileWriter interface {
	WriteFile(path string, data []byte) error
	Backup(path string) (string, error)
}

// CheckCacheStore persists check results between runs.
type CheckCacheStore interface {
	Load(root string) (*CheckCache, error)
	Save(cache *CheckCache) error
	Invalidate(root string) error
}
