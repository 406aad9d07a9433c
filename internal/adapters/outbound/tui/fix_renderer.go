package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abdidvp/pystyle/internal/domain"
)

var (
	addedStyle   = lipgloss.NewStyle().Foreground(success)
	removedStyle = lipgloss.NewStyle().Foreground(danger)
	hunkStyle    = lipgloss.NewStyle().Foreground(info)
)

// RenderFix renders the applied and skipped fixes followed by the diff.
func RenderFix(res *domain.FixResult) string {
	var b strings.Builder

	if !res.Changed() {
		b.WriteString("\n  " + dimStyle.Render("Custom Tool: No fixes were applied.") + "\n")
		renderSkipped(&b, res.Skipped)
		return b.String()
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s\n",
		sectionHeaderStyle.Render("Custom Tool Fixes Applied"),
		dimStyle.Render(fmt.Sprintf("(%d)", len(res.Applied))))
	for _, a := range res.Applied {
		fmt.Fprintf(&b, "    %s %s  %s\n",
			passStyle.Render("✓"),
			locationStyle.Render(fmt.Sprintf("line %d", a.Line)),
			a.Description)
	}
	renderSkipped(&b, res.Skipped)

	b.WriteString("\n")
	b.WriteString(RenderDiff(res.Diff))

	b.WriteString("\n")
	stats := fmt.Sprintf("%s  +%d  ~%d  -%d", plural(res.Stats.Hunks, "hunk"), res.Stats.Added, res.Stats.Changed, res.Stats.Deleted)
	b.WriteString("  " + dimStyle.Render(stats) + "\n")
	switch {
	case res.Written && res.BackupPath != "":
		b.WriteString("  " + passStyle.Render("written") + "  " + dimStyle.Render("backup: "+res.BackupPath) + "\n")
	case res.Written:
		b.WriteString("  " + passStyle.Render("written") + "\n")
	default:
		b.WriteString("  " + hintStyle.Render("dry run, nothing written") + "\n")
	}
	return b.String()
}

func renderSkipped(b *strings.Builder, skipped []domain.SkippedFix) {
	if len(skipped) == 0 {
		return
	}
	b.WriteString("\n")
	fmt.Fprintf(b, "  %s %s\n",
		sectionHeaderStyle.Render("Skipped"),
		dimStyle.Render(fmt.Sprintf("(%d)", len(skipped))))
	for _, s := range skipped {
		where := string(s.Kind)
		if s.Line > 0 {
			where = fmt.Sprintf("%s line %d", s.Kind, s.Line)
		}
		fmt.Fprintf(b, "    %s %s  %s\n", warnStyle.Render("○"), fileStyle.Render(where), faintStyle.Render(s.Reason))
	}
}

// RenderDiff colours a unified diff line by line.
func RenderDiff(unified string) string {
	if unified == "" {
		return ""
	}
	var b strings.Builder
	for _, line := range strings.SplitAfter(strings.TrimSuffix(unified, "\n"), "\n") {
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
			text = titleStyle.Render(text)
		case strings.HasPrefix(text, "@@"):
			text = hunkStyle.Render(text)
		case strings.HasPrefix(text, "+"):
			text = addedStyle.Render(text)
		case strings.HasPrefix(text, "-"):
			text = removedStyle.Render(text)
		}
		b.WriteString("  " + text + "\n")
	}
	return b.String()
}

// RenderFormat renders the formatter outcome.
func RenderFormat(tool string, res *domain.FormatResult) string {
	if res.Diff == "" {
		return "\n  " + dimStyle.Render(tool+": No fixes were applied.") + "\n"
	}
	var b strings.Builder
	b.WriteString("\n  " + sectionHeaderStyle.Render(tool+" output") + "\n")
	b.WriteString(RenderDiff(res.Diff))
	if res.Applied {
		b.WriteString("  " + passStyle.Render("applied in place") + "\n")
	}
	return b.String()
}
