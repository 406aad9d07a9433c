package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abdidvp/pystyle/internal/domain"
)

func TestViolation_KeyAndString(t *testing.T) {
	v := domain.Violation{Rule: "semicolon", Line: 2, Column: 6, Message: "Unnecessary semicolon at the end of line 2"}
	assert.Equal(t, domain.FindingKey{Line: 2, Column: 6, Message: "Unnecessary semicolon at the end of line 2"}, v.Key())
	assert.Equal(t, "Line 2, Column 6: Unnecessary semicolon at the end of line 2", v.String())
}

func TestExternalFinding_Key(t *testing.T) {
	f := domain.ExternalFinding{File: "a.py", Line: 1, Column: 1, Code: "F401", Message: "'os' imported but unused"}
	assert.Equal(t, "F401 'os' imported but unused", f.FullMessage())
	assert.Equal(t, domain.FindingKey{Line: 1, Column: 1, Message: "F401 'os' imported but unused"}, f.Key())
}

func TestCheckReport_Status(t *testing.T) {
	tests := []struct {
		name     string
		report   domain.CheckReport
		findings bool
		failed   bool
	}{
		{"clean", domain.CheckReport{Violations: []domain.Violation{}}, false, false},
		{"violations", domain.CheckReport{Violations: []domain.Violation{{Rule: "semicolon"}}}, true, false},
		{"rule failure", domain.CheckReport{Failures: []domain.CheckFailure{{Rule: "docstring", Error: "boom"}}}, false, true},
		{"parse error", domain.CheckReport{Error: "source does not parse"}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.findings, tt.report.HasFindings())
			assert.Equal(t, tt.failed, tt.report.Failed())
		})
	}
}

func TestCheckReport_CountByRule(t *testing.T) {
	r := domain.CheckReport{Violations: []domain.Violation{
		{Rule: "variable-naming"}, {Rule: "docstring"}, {Rule: "variable-naming"},
	}}
	assert.Equal(t, map[string]int{"variable-naming": 2, "docstring": 1}, r.CountByRule())
}
