package rules

import (
	"github.com/abdidvp/pystyle/internal/domain"
	"github.com/abdidvp/pystyle/internal/domain/naming"
	"github.com/abdidvp/pystyle/internal/domain/syntax"
)

func checkVariableNaming(r BaseRule, ctx *Context) []domain.Violation {
	var out []domain.Violation
	for _, a := range syntax.Collect[*syntax.Assign](ctx.File.Tree) {
		for _, target := range syntax.SimpleTargets(a) {
			if naming.IsSnakeCase(target.ID) {
				continue
			}
			p := target.Position()
			out = append(out, r.violation(p.Line, p.Column, "Variable '%s' should be snake_case", target.ID))
		}
	}
	return out
}

func checkFunctionNaming(r BaseRule, ctx *Context) []domain.Violation {
	var out []domain.Violation
	for _, fn := range syntax.Collect[*syntax.FunctionDef](ctx.File.Tree) {
		if naming.IsSnakeCase(fn.Name.Name) {
			continue
		}
		p := fn.Position()
		out = append(out, r.violation(p.Line, p.Column, "Function '%s' should be snake_case", fn.Name.Name))
	}
	return out
}

func checkClassNaming(r BaseRule, ctx *Context) []domain.Violation {
	var out []domain.Violation
	for _, cls := range syntax.Collect[*syntax.ClassDef](ctx.File.Tree) {
		if naming.IsCapWords(cls.Name.Name) {
			continue
		}
		p := cls.Position()
		out = append(out, r.violation(p.Line, p.Column, "Class '%s' should use CapWords", cls.Name.Name))
	}
	return out
}
