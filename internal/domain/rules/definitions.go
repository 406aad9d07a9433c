package rules

import (
	"strings"

	"github.com/abdidvp/pystyle/internal/domain"
	"github.com/abdidvp/pystyle/internal/domain/syntax"
)

// checkBlankLines looks at the line above the definition, or above its
// first decorator when it has one. A decorator directly over its def is
// never reported; the finding is still placed on the def line.
func checkBlankLines(r BaseRule, ctx *Context) []domain.Violation {
	var out []domain.Violation
	for _, def := range syntax.Definitions(ctx.File.Tree) {
		head := def.DefHeader().Head.Line
		if head <= 1 {
			continue
		}
		if strings.TrimSpace(ctx.File.Line(head-1)) == "" {
			continue
		}
		out = append(out, r.violation(def.Position().Line, 0,
			"Function/Class '%s' should be preceded by a blank line", def.DefName().Name))
	}
	return out
}

func checkDocstrings(r BaseRule, ctx *Context) []domain.Violation {
	var out []domain.Violation
	for _, def := range syntax.Definitions(ctx.File.Tree) {
		if syntax.HasDocstring(def.DefBody()) {
			continue
		}
		out = append(out, r.violation(def.Position().Line, 0,
			"Function/Class '%s' should have a docstring", def.DefName().Name))
	}
	return out
}

// checkMutableDefaults inspects the annotation of each positional
// parameter, not its default value.
func checkMutableDefaults(r BaseRule, ctx *Context) []domain.Violation {
	var out []domain.Violation
	for _, fn := range syntax.Collect[*syntax.FunctionDef](ctx.File.Tree) {
		for _, p := range fn.PositionalParams() {
			coll, ok := p.Annotation.(*syntax.Collection)
			if !ok || (coll.Kind != syntax.CollList && coll.Kind != syntax.CollDict) {
				continue
			}
			out = append(out, r.violation(fn.Position().Line, 0,
				"Function '%s' has a mutable default argument.", fn.Name.Name))
		}
	}
	return out
}

func checkNoneComparison(r BaseRule, ctx *Context) []domain.Violation {
	var out []domain.Violation
	for _, cmp := range syntax.Collect[*syntax.Compare](ctx.File.Tree) {
		if len(cmp.Ops) == 0 || cmp.Ops[0] != "is" {
			continue
		}
		left, ok := cmp.Left.(*syntax.Constant)
		if !ok || left.Kind != syntax.ConstNone {
			continue
		}
		p := cmp.Position()
		out = append(out, r.violation(p.Line, p.Column,
			"Comparison 'None is ...' has 'None' on the left; write 'x is None'"))
	}
	return out
}
