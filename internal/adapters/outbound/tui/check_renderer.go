package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abdidvp/pystyle/internal/domain"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	locationStyle      = lipgloss.NewStyle().Foreground(info)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

// RenderCheckReport renders the findings for one file.
func RenderCheckReport(report *domain.CheckReport) string {
	var b strings.Builder

	title := headerStyle.Render("pystyle")
	file := titleStyle.Render(shortenPath(report.File))
	count := passStyle.Render("clean")
	switch {
	case report.Error != "":
		count = errorTagStyle.Render("not checked")
	case report.HasFindings():
		count = failStyle.Render(plural(len(report.Violations), "violation"))
	}
	if report.Cached {
		count += "  " + faintStyle.Render("cached")
	}
	b.WriteString(boxStyle.Render(title + "\n" + file + "  " + count))
	b.WriteString("\n")

	switch {
	case report.Error != "":
		b.WriteString("\n  " + errorTagStyle.Render("error") + " " + dimStyle.Render(report.Error) + "\n")
	case len(report.Violations) > 0:
		renderViolations(&b, "Custom Tool", report.Violations)
		renderRuleCounts(&b, report.CountByRule())
	default:
		b.WriteString("\n  " + passStyle.Render("No violations found. Your code is clean!") + "\n")
	}

	if len(report.Failures) > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s %s\n",
			sectionHeaderStyle.Render("Rule Failures"),
			dimStyle.Render(fmt.Sprintf("(%d)", len(report.Failures))))
		for _, f := range report.Failures {
			fmt.Fprintf(&b, "    %s %s  %s\n", errorTagStyle.Render("error"), f.Rule, faintStyle.Render(f.Error))
		}
	}

	b.WriteString("\n")
	if report.HasFindings() {
		b.WriteString("  " + hintStyle.Render("Run pystyle fix to rewrite what can be fixed safely."))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderCheckSummary renders several reports followed by a one-line total.
func RenderCheckSummary(reports []*domain.CheckReport) string {
	var b strings.Builder
	total, dirty := 0, 0
	for _, r := range reports {
		b.WriteString(RenderCheckReport(r))
		total += len(r.Violations)
		if r.HasFindings() {
			dirty++
		}
	}
	b.WriteString("  " + separatorLine + "\n")
	summary := fmt.Sprintf("%s in %s of %s", plural(total, "violation"), plural(dirty, "file"), plural(len(reports), "file"))
	if total == 0 {
		b.WriteString("  " + passStyle.Render(summary) + "\n")
	} else {
		b.WriteString("  " + failStyle.Render(summary) + "\n")
	}
	return b.String()
}

// RenderExternalFindings renders external linter output the same way as the
// custom findings.
func RenderExternalFindings(tool string, findings []domain.ExternalFinding) string {
	var b strings.Builder
	if len(findings) == 0 {
		b.WriteString("\n  " + passStyle.Render(tool+": No violations found. Your code is clean!") + "\n")
		return b.String()
	}
	vs := make([]domain.Violation, len(findings))
	for i, f := range findings {
		vs[i] = domain.Violation{Rule: f.Code, Line: f.Line, Column: f.Column, Message: f.FullMessage()}
	}
	renderViolations(&b, tool, vs)
	return b.String()
}

func renderViolations(b *strings.Builder, tool string, vs []domain.Violation) {
	b.WriteString("\n")
	fmt.Fprintf(b, "  %s %s\n",
		sectionHeaderStyle.Render(tool+" Violations"),
		dimStyle.Render(fmt.Sprintf("(%d found)", len(vs))))
	for _, v := range vs {
		loc := locationStyle.Render(fmt.Sprintf("Line %d, Column %d:", v.Line, v.Column))
		fmt.Fprintf(b, "    %s %s\n", loc, v.Message)
	}
}

func renderRuleCounts(b *strings.Builder, counts map[string]int) {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	b.WriteString("\n")
	b.WriteString("  " + sectionHeaderStyle.Render("By Rule") + "\n")
	for _, name := range names {
		fmt.Fprintf(b, "    %s %s\n", padRight(name, 22), dimStyle.Render(fmt.Sprint(counts[name])))
	}
}
