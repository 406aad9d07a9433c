package fixer

import (
	"sort"
	"strings"

	"github.com/abdidvp/pystyle/internal/domain"
)

// Insertions at the same offset are emitted in this order: a docstring ends
// the enclosing header, a blank line precedes the next definition.
const (
	orderDocstring = iota
	orderBlankLine
	orderOther
)

// edit replaces content[start:end] with text. start == end is an insertion.
type edit struct {
	start, end int
	text       string
	order      int
}

func (e edit) insertion() bool { return e.start == e.end }

func overlaps(a, b edit) bool {
	switch {
	case a.insertion() && b.insertion():
		return false
	case a.insertion():
		return a.start > b.start && a.start < b.end
	case b.insertion():
		return b.start > a.start && b.start < a.end
	}
	return a.start < b.end && b.start < a.end
}

// fix is one logical change. Its edits are accepted or dropped together so a
// rename never lands half applied.
type fix struct {
	applied domain.AppliedFix
	edits   []edit
}

// plan collects fixes in priority order and rejects those that collide with
// an already accepted one.
type plan struct {
	config   domain.Config
	accepted []edit
	applied  []domain.AppliedFix
	skipped  []domain.SkippedFix
}

func (p *plan) add(f fix) bool {
	for _, e := range f.edits {
		for _, a := range p.accepted {
			if overlaps(e, a) {
				p.skip(f.applied.Kind, f.applied.Line, "overlaps an earlier fix")
				return false
			}
		}
	}
	p.accepted = append(p.accepted, f.edits...)
	p.applied = append(p.applied, f.applied)
	return true
}

var ruleForKind = map[domain.FixKind]string{
	domain.FixRenameVariable: "variable-naming",
	domain.FixRenameFunction: "function-naming",
	domain.FixRenameClass:    "class-naming",
	domain.FixIndentation:    "indentation",
	domain.FixRemoveImport:   "unused-import",
	domain.FixBlankLine:      "blank-lines",
	domain.FixDocstring:      "docstring",
}

// wants reports whether the rule behind kind is enabled.
func (p *plan) wants(kind domain.FixKind) bool {
	return !p.config.IsDisabled(ruleForKind[kind])
}

func (p *plan) skip(kind domain.FixKind, line int, reason string) {
	p.skipped = append(p.skipped, domain.SkippedFix{Kind: kind, Line: line, Reason: reason})
}

// apply splices the accepted edits into content.
func (p *plan) apply(content string) string {
	edits := append([]edit(nil), p.accepted...)
	sort.SliceStable(edits, func(i, j int) bool {
		a, b := edits[i], edits[j]
		if a.start != b.start {
			return a.start < b.start
		}
		if a.insertion() != b.insertion() {
			return a.insertion()
		}
		return a.order < b.order
	})

	var out strings.Builder
	out.Grow(len(content))
	pos := 0
	for _, e := range edits {
		out.WriteString(content[pos:e.start])
		out.WriteString(e.text)
		pos = e.end
	}
	out.WriteString(content[pos:])
	return out.String()
}
