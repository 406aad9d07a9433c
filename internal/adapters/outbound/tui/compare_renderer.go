package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/abdidvp/pystyle/internal/domain"
)

// RenderComparison renders the three partitions and the cost of each tool.
func RenderComparison(c *domain.Comparison) string {
	var b strings.Builder

	title := headerStyle.Render("pystyle vs " + c.External.Tool)
	counts := fmt.Sprintf("%s  ·  %s  ·  %s",
		warnStyle.Render(fmt.Sprintf("%d custom only", len(c.CustomOnly))),
		infoTagStyle.Render(fmt.Sprintf("%d %s only", len(c.ExternalOnly), c.External.Tool)),
		passStyle.Render(fmt.Sprintf("%d common", len(c.Common))))
	b.WriteString(boxStyle.Render(title + "\n" + titleStyle.Render(shortenPath(c.File)) + "\n\n" + counts))
	b.WriteString("\n")

	renderPartition(&b, "Custom Tool Only", c.CustomOnly)
	renderPartition(&b, c.External.Tool+" Only", c.ExternalOnly)
	renderPartition(&b, "Common", c.Common)

	if len(c.Failures) > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s %s\n",
			sectionHeaderStyle.Render("Rule Failures"),
			dimStyle.Render(fmt.Sprintf("(%d)", len(c.Failures))))
		for _, f := range c.Failures {
			fmt.Fprintf(&b, "    %s %s  %s\n", errorTagStyle.Render("error"), f.Rule, faintStyle.Render(f.Error))
		}
	}

	b.WriteString("\n  " + separatorLine + "\n\n")
	b.WriteString("  " + titleStyle.Render("Benchmark") + "\n")
	renderRun(&b, c.Custom)
	renderRun(&b, c.External)
	b.WriteString("\n")
	return b.String()
}

func renderPartition(b *strings.Builder, title string, keys []domain.FindingKey) {
	b.WriteString("\n")
	fmt.Fprintf(b, "  %s %s\n", sectionHeaderStyle.Render(title), dimStyle.Render(fmt.Sprintf("(%d)", len(keys))))
	if len(keys) == 0 {
		b.WriteString("    " + faintStyle.Render("none") + "\n")
		return
	}
	for _, k := range keys {
		loc := locationStyle.Render(fmt.Sprintf("Line %d, Column %d:", k.Line, k.Column))
		fmt.Fprintf(b, "    %s %s\n", loc, k.Message)
	}
}

func renderRun(b *strings.Builder, run domain.ToolRun) {
	fmt.Fprintf(b, "    %s %s  %s\n",
		ruleNameStyle.Render(padRight(run.Tool, 12)),
		dimStyle.Render(fmt.Sprintf("%.6f seconds", run.Duration.Seconds())),
		dimStyle.Render(fmt.Sprintf("%.2f KB", float64(run.MemoryDelta)/1024)))
}

// RenderBenchmark renders ad hoc timings, as the interactive loop reports
// them for tools outside a comparison.
func RenderBenchmark(tool string, d time.Duration, memDelta int64) string {
	var b strings.Builder
	renderRun(&b, domain.ToolRun{Tool: tool, Duration: d, MemoryDelta: memDelta})
	return b.String()
}
