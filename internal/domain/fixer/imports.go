package fixer

import (
	"fmt"
	"strings"

	"github.com/abdidvp/pystyle/internal/domain"
	"github.com/abdidvp/pystyle/internal/domain/rules"
	"github.com/abdidvp/pystyle/internal/domain/syntax"
)

// planImports drops top-level imports whose names are never read and
// rewrites those that keep only some of their names. It returns the lines it
// deletes entirely.
//
// Names are always matched by what the statement binds, whatever the
// reporting granularity, so a removal never breaks a reference.
func planImports(p *plan, file *domain.SourceFile) map[int]bool {
	removed := make(map[int]bool)
	if !p.wants(domain.FixRemoveImport) {
		return removed
	}
	reads := syntax.Reads(file.Tree)

	for _, stmt := range file.Tree.Body {
		aliases, prefix := importParts(stmt)
		if len(aliases) == 0 {
			continue
		}

		var kept, dropped []string
		for _, a := range aliases {
			text := file.Content[a.Span.Start:a.Span.End]
			if reads[rules.AliasName(a, domain.ImportBound)] {
				kept = append(kept, text)
			} else {
				dropped = append(dropped, "'"+a.Name+"'")
			}
		}
		if len(dropped) == 0 {
			continue
		}

		sp := stmt.Extent()
		first, last := stmt.Position().Line, file.LineOf(sp.End-1)
		if !ownsLines(file, sp, first, last) {
			p.skip(domain.FixRemoveImport, first, "import shares a line with another statement")
			continue
		}

		applied := domain.AppliedFix{
			Kind:        domain.FixRemoveImport,
			Line:        first,
			Description: "removed unused import " + strings.Join(dropped, ", "),
		}
		if len(kept) > 0 {
			p.add(fix{applied: applied, edits: []edit{{
				start: sp.Start, end: sp.End,
				text:  prefix + strings.Join(kept, ", "),
				order: orderOther,
			}}})
			continue
		}
		ok := p.add(fix{applied: applied, edits: []edit{{
			start: file.LineStart(first), end: file.LineStart(last + 1),
			order: orderOther,
		}}})
		if ok {
			for l := first; l <= last; l++ {
				removed[l] = true
			}
		}
	}
	return removed
}

// importParts returns the checkable aliases of an import statement and the
// text that precedes them when the statement is rewritten.
func importParts(stmt syntax.Node) ([]syntax.Alias, string) {
	switch imp := stmt.(type) {
	case *syntax.Import:
		return imp.Names, "import "
	case *syntax.ImportFrom:
		if imp.Wildcard || imp.Module == "__future__" {
			return nil, ""
		}
		return imp.Names, fmt.Sprintf("from %s import ", imp.ModuleText())
	}
	return nil, ""
}

// ownsLines reports whether the statement is alone on its lines, apart from
// a trailing comment.
func ownsLines(file *domain.SourceFile, sp syntax.Span, first, last int) bool {
	if strings.TrimSpace(file.Content[file.LineStart(first):sp.Start]) != "" {
		return false
	}
	rest := strings.TrimSpace(file.Content[sp.End:file.LineStart(last+1)])
	return rest == "" || strings.HasPrefix(rest, "#")
}
