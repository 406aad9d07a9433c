package fixer

import (
	"fmt"

	"github.com/abdidvp/pystyle/internal/domain"
	"github.com/abdidvp/pystyle/internal/domain/naming"
	"github.com/abdidvp/pystyle/internal/domain/syntax"
)

type renameCandidate struct {
	name string
	kind domain.FixKind
	line int
}

// renameCandidates lists badly named variables, then functions, then
// classes. A name is proposed once, under the first kind that claims it.
func renameCandidates(tree *syntax.Module) []renameCandidate {
	var out []renameCandidate
	seen := make(map[string]bool)
	propose := func(name string, kind domain.FixKind, line int) {
		if seen[name] {
			return
		}
		seen[name] = true
		out = append(out, renameCandidate{name: name, kind: kind, line: line})
	}

	for _, a := range syntax.Collect[*syntax.Assign](tree) {
		for _, t := range syntax.SimpleTargets(a) {
			if !naming.IsSnakeCase(t.ID) {
				propose(t.ID, domain.FixRenameVariable, t.Position().Line)
			}
		}
	}
	for _, fn := range syntax.Collect[*syntax.FunctionDef](tree) {
		if !naming.IsSnakeCase(fn.Name.Name) {
			propose(fn.Name.Name, domain.FixRenameFunction, fn.Name.Pos.Line)
		}
	}
	for _, c := range syntax.Collect[*syntax.ClassDef](tree) {
		if !naming.IsCapWords(c.Name.Name) {
			propose(c.Name.Name, domain.FixRenameClass, c.Name.Pos.Line)
		}
	}
	return out
}

func convert(c renameCandidate) (string, bool) {
	if c.kind == domain.FixRenameClass {
		to := naming.ToCapWords(c.name)
		return to, naming.IsCapWords(to)
	}
	to := naming.ToSnakeCase(c.name)
	return to, naming.IsSnakeCase(to)
}

// planRenames renames every occurrence of each badly named binding. A rename
// is skipped when the new name is taken or a keyword, or when the old name
// also appears somewhere a file-local rename cannot follow it.
func planRenames(p *plan, tree *syntax.Module) {
	occurrences := tree.OccurrencesOf()
	methods := methodNames(tree)
	taken := make(map[string]bool, len(occurrences))
	for name := range occurrences {
		taken[name] = true
	}

	for _, c := range renameCandidates(tree) {
		if !p.wants(c.kind) {
			continue
		}
		to, ok := convert(c)
		switch {
		case !ok || to == c.name:
			p.skip(c.kind, c.line, fmt.Sprintf("no conventional spelling for '%s'", c.name))
			continue
		case naming.IsKeyword(to):
			p.skip(c.kind, c.line, fmt.Sprintf("'%s' is a keyword", to))
			continue
		case taken[to]:
			p.skip(c.kind, c.line, fmt.Sprintf("'%s' is already used in this file", to))
			continue
		}

		var edits []edit
		blocked := ""
		for _, o := range occurrences[c.name] {
			switch o.Role {
			case syntax.RoleName, syntax.RoleDef:
			case syntax.RoleAttr:
				if c.kind != domain.FixRenameFunction || !methods[c.name] {
					blocked = o.Role.String()
				}
			default:
				blocked = o.Role.String()
			}
			if blocked != "" {
				break
			}
			edits = append(edits, edit{start: o.Span.Start, end: o.Span.End, text: to, order: orderOther})
		}
		if blocked != "" {
			p.skip(c.kind, c.line, fmt.Sprintf("'%s' also occurs as %s", c.name, blocked))
			continue
		}

		taken[to] = true
		p.add(fix{
			applied: domain.AppliedFix{
				Kind:        c.kind,
				Line:        c.line,
				Description: fmt.Sprintf("renamed '%s' to '%s'", c.name, to),
			},
			edits: edits,
		})
	}
}

// methodNames returns the function names that are only ever defined as
// methods of classes without base classes, where obj.name can only refer to
// the method itself.
func methodNames(tree *syntax.Module) map[string]bool {
	inPlainClass := make(map[*syntax.FunctionDef]bool)
	for _, c := range syntax.Collect[*syntax.ClassDef](tree) {
		if !plainClass(c) || c.Body == nil {
			continue
		}
		for _, stmt := range c.Body.Stmts {
			if fn, ok := stmt.(*syntax.FunctionDef); ok {
				inPlainClass[fn] = true
			}
		}
	}

	out := make(map[string]bool)
	var mixed []string
	for _, fn := range syntax.Collect[*syntax.FunctionDef](tree) {
		if inPlainClass[fn] {
			out[fn.Name.Name] = true
		} else {
			mixed = append(mixed, fn.Name.Name)
		}
	}
	for _, name := range mixed {
		delete(out, name)
	}
	return out
}

func plainClass(c *syntax.ClassDef) bool {
	for _, b := range c.Bases {
		if n, ok := b.(*syntax.Name); !ok || n.ID != "object" {
			return false
		}
	}
	return true
}
