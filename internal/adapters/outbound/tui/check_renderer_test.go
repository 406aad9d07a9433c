package tui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abdidvp/pystyle/internal/adapters/outbound/tui"
	"github.com/abdidvp/pystyle/internal/domain"
)

func sampleCheckReport() *domain.CheckReport {
	return &domain.CheckReport{
		RunID: "run-1",
		File:  "project/src/app/example.py",
		Violations: []domain.Violation{
			{Rule: "variable-naming", Line: 3, Column: 0, Message: "Variable 'MyVar' should be snake_case"},
			{Rule: "docstring", Line: 5, Column: 0, Message: "Function/Class 'f' should have a docstring"},
			{Rule: "variable-naming", Line: 9, Column: 4, Message: "Variable 'Other' should be snake_case"},
		},
	}
}

func TestRenderCheckReport_ListsViolations(t *testing.T) {
	output := tui.RenderCheckReport(sampleCheckReport())
	assert.Contains(t, output, "src/app/example.py")
	assert.Contains(t, output, "3 violations")
	assert.Contains(t, output, "Line 3, Column 0:")
	assert.Contains(t, output, "Variable 'MyVar' should be snake_case")
	assert.Contains(t, output, "Line 9, Column 4:")
}

func TestRenderCheckReport_GroupsByRule(t *testing.T) {
	output := tui.RenderCheckReport(sampleCheckReport())
	assert.Contains(t, output, "By Rule")
	assert.Contains(t, output, "variable-naming")
	assert.Contains(t, output, "docstring")
}

func TestRenderCheckReport_Clean(t *testing.T) {
	output := tui.RenderCheckReport(&domain.CheckReport{File: "clean.py", Violations: []domain.Violation{}})
	assert.Contains(t, output, "No violations found")
	assert.NotContains(t, output, "pystyle fix")
}

func TestRenderCheckReport_ShowsRuleFailures(t *testing.T) {
	r := sampleCheckReport()
	r.Failures = []domain.CheckFailure{{Rule: "line-length", Error: "rule line-length panicked: boom"}}
	output := tui.RenderCheckReport(r)
	assert.Contains(t, output, "Rule Failures")
	assert.Contains(t, output, "panicked: boom")
}

func TestRenderCheckSummary_Totals(t *testing.T) {
	clean := &domain.CheckReport{File: "clean.py", Violations: []domain.Violation{}}
	output := tui.RenderCheckSummary([]*domain.CheckReport{sampleCheckReport(), clean})
	assert.Contains(t, output, "3 violations in 1 file of 2 files")
}

func TestRenderExternalFindings(t *testing.T) {
	output := tui.RenderExternalFindings("flake8", []domain.ExternalFinding{
		{File: "a.py", Line: 1, Column: 1, Code: "F401", Message: "'os' imported but unused"},
	})
	assert.Contains(t, output, "flake8 Violations")
	assert.Contains(t, output, "F401 'os' imported but unused")

	assert.Contains(t, tui.RenderExternalFindings("flake8", nil), "flake8: No violations found")
}

func TestRenderCheckReport_ShowsFileError(t *testing.T) {
	output := tui.RenderCheckReport(&domain.CheckReport{File: "broken.py", Error: "source does not parse: syntax error at line 2, column 4"})
	assert.Contains(t, output, "not checked")
	assert.Contains(t, output, "syntax error at line 2")
	assert.NotContains(t, output, "clean!")
}

func TestRenderCheckReport_MarksCachedResults(t *testing.T) {
	report := sampleCheckReport()
	assert.NotContains(t, tui.RenderCheckReport(report), "cached")

	report.Cached = true
	assert.Contains(t, tui.RenderCheckReport(report), "cached")
}
