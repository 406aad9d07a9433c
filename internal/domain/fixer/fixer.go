// Package fixer rewrites a Python file to remove the violations that have a
// safe mechanical fix. Every fix is planned as a text edit against the
// original content; the edits are spliced in one pass and the result must
// parse again before it is returned.
package fixer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/abdidvp/pystyle/internal/domain"
	"github.com/abdidvp/pystyle/internal/domain/diff"
)

// Fixer plans and applies fixes for one file at a time.
type Fixer struct {
	config domain.Config
	parser domain.Parser
}

// New returns a fixer that honours config and re-parses its output with
// parser.
func New(config domain.Config, parser domain.Parser) *Fixer {
	return &Fixer{config: config, parser: parser}
}

// Fix computes the rewritten text of file and the unified diff from the
// original. Nothing is written; the caller decides what to do with the
// result.
func (f *Fixer) Fix(ctx context.Context, file *domain.SourceFile) (*domain.FixResult, error) {
	p := &plan{config: f.config, applied: []domain.AppliedFix{}}

	// 1. Names.
	planRenames(p, file.Tree)

	// 2. Indentation is only reported.
	noteIndentation(p, file)

	// 3. Imports, then the layout fixes that depend on which lines survive.
	removed := planImports(p, file)
	planBlankLines(p, file, removed)
	planDocstrings(p, file)

	fixed := p.apply(file.Content)

	// 4. The rewritten text must still be valid Python.
	if _, err := f.parser.Parse(ctx, []byte(fixed)); err != nil {
		return nil, fmt.Errorf("rewritten %s: %w", file.Path, err)
	}

	// 5. Diff and self-check.
	label := strings.TrimPrefix(filepath.ToSlash(file.Path), "/")
	unified, err := diff.Unified("original/"+label, "fixed/"+label, file.Content, fixed)
	if err != nil {
		return nil, err
	}
	stats, err := diff.Stats(unified)
	if err != nil {
		return nil, err
	}
	if err := diff.Verify(file.Content, fixed, unified); err != nil {
		return nil, fmt.Errorf("diff for %s: %w", file.Path, err)
	}

	return &domain.FixResult{
		File:     file.Path,
		Original: file.Content,
		Fixed:    fixed,
		Diff:     unified,
		Applied:  p.applied,
		Skipped:  p.skipped,
		Stats:    stats,
	}, nil
}
