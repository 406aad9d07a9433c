package rules

import (
	"strings"

	"github.com/abdidvp/pystyle/internal/domain"
	"github.com/abdidvp/pystyle/internal/domain/syntax"
)

// ImportedNames returns the names an import statement is checked by, one
// per alias. Wildcards and __future__ imports yield nothing.
func ImportedNames(stmt syntax.Node, granularity domain.ImportGranularity) []string {
	var aliases []syntax.Alias
	switch imp := stmt.(type) {
	case *syntax.Import:
		aliases = imp.Names
	case *syntax.ImportFrom:
		if imp.Wildcard || imp.Module == "__future__" {
			return nil
		}
		aliases = imp.Names
	default:
		return nil
	}

	names := make([]string, 0, len(aliases))
	for _, a := range aliases {
		names = append(names, AliasName(a, granularity))
	}
	return names
}

// AliasName is the name one alias is checked by.
func AliasName(a syntax.Alias, granularity domain.ImportGranularity) string {
	if granularity == domain.ImportLiteral {
		return a.Name
	}
	if a.AsName != "" {
		return a.AsName
	}
	// "import a.b" binds "a".
	head, _, _ := strings.Cut(a.Name, ".")
	return head
}

func checkUnusedImports(r BaseRule, ctx *Context) []domain.Violation {
	reads := syntax.Reads(ctx.File.Tree)
	var out []domain.Violation
	syntax.Inspect(ctx.File.Tree, func(n syntax.Node) bool {
		switch n.(type) {
		case *syntax.Import, *syntax.ImportFrom:
		default:
			return true
		}
		p := n.Position()
		for _, name := range ImportedNames(n, ctx.Config.ImportGranularity) {
			if !reads[name] {
				out = append(out, r.violation(p.Line, p.Column, "Import '%s' is imported but unused", name))
			}
		}
		return false
	})
	return out
}

func checkUnusedVariables(r BaseRule, ctx *Context) []domain.Violation {
	reads := syntax.Reads(ctx.File.Tree)
	var out []domain.Violation
	for _, a := range syntax.Collect[*syntax.Assign](ctx.File.Tree) {
		for _, target := range syntax.SimpleTargets(a) {
			if reads[target.ID] {
				continue
			}
			out = append(out, r.violation(a.Position().Line, target.Position().Column,
				"Variable '%s' is assigned but never used", target.ID))
		}
	}
	return out
}
