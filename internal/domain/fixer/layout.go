package fixer

import (
	"fmt"
	"strings"

	"github.com/abdidvp/pystyle/internal/domain"
	"github.com/abdidvp/pystyle/internal/domain/syntax"
)

// noteIndentation records lines the indentation rule flags. Re-indenting is
// not attempted, so they are reported as skipped.
func noteIndentation(p *plan, file *domain.SourceFile) {
	if !p.wants(domain.FixIndentation) {
		return
	}
	first, count := 0, 0
	for i, line := range file.Lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		spaces := len(line) - len(strings.TrimLeft(line, " "))
		if spaces%4 == 0 {
			continue
		}
		if count == 0 {
			first = i + 1
		}
		count++
	}
	if count > 0 {
		p.skip(domain.FixIndentation, first,
			fmt.Sprintf("%d line(s) not indented by a multiple of 4 spaces; indentation is left as is", count))
	}
}

// planBlankLines inserts an empty line above definitions whose previous
// surviving line has code on it.
func planBlankLines(p *plan, file *domain.SourceFile, removed map[int]bool) {
	if !p.wants(domain.FixBlankLine) {
		return
	}
	for _, def := range syntax.Definitions(file.Tree) {
		head := def.DefHeader().Head.Line
		prev := head - 1
		for prev >= 1 && removed[prev] {
			prev--
		}
		if prev < 1 || strings.TrimSpace(file.Line(prev)) == "" {
			continue
		}
		at := file.LineStart(head)
		p.add(fix{
			applied: domain.AppliedFix{
				Kind:        domain.FixBlankLine,
				Line:        def.Position().Line,
				Description: fmt.Sprintf("inserted a blank line before '%s'", def.DefName().Name),
			},
			edits: []edit{{start: at, end: at, text: "\n", order: orderBlankLine}},
		})
	}
}

// planDocstrings gives every definition without a docstring the placeholder
// one. An empty docstring is replaced and a body written on the header line
// is moved below it.
func planDocstrings(p *plan, file *domain.SourceFile) {
	if !p.wants(domain.FixDocstring) {
		return
	}
	literal := `"""` + p.config.DocstringPlaceholder + `"""`

	for _, def := range syntax.Definitions(file.Tree) {
		body := def.DefBody()
		if body == nil || len(body.Stmts) == 0 || syntax.HasDocstring(body) {
			continue
		}
		line := def.Position().Line
		applied := domain.AppliedFix{
			Kind:        domain.FixDocstring,
			Line:        line,
			Description: fmt.Sprintf("added a docstring to '%s'", def.DefName().Name),
		}

		if doc, ok := syntax.Docstring(body); ok {
			sp := doc.Extent()
			p.add(fix{applied: applied, edits: []edit{{start: sp.Start, end: sp.End, text: literal, order: orderOther}}})
			continue
		}

		start := body.Stmts[0].Extent().Start
		stmtLine := file.LineOf(start)
		colon := def.DefHeader().ColonEnd
		if colon > 0 && file.LineOf(colon) == stmtLine {
			indent := leadingSpace(file.Line(line)) + "    "
			p.add(fix{applied: applied, edits: []edit{{
				start: colon, end: start,
				text:  "\n" + indent + literal + "\n" + indent,
				order: orderDocstring,
			}}})
			continue
		}

		lineStart := file.LineStart(stmtLine)
		indent := file.Content[lineStart:start]
		if strings.TrimSpace(indent) != "" {
			p.skip(domain.FixDocstring, line, "body does not start on its own line")
			continue
		}
		p.add(fix{applied: applied, edits: []edit{{
			start: lineStart, end: lineStart,
			text:  indent + literal + "\n",
			order: orderDocstring,
		}}})
	}
}

func leadingSpace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
