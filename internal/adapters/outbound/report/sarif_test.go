package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/pystyle/internal/adapters/outbound/report"
	"github.com/abdidvp/pystyle/internal/domain"
)

type sarifDoc struct {
	Version string `json:"version"`
	Runs    []struct {
		Tool struct {
			Driver struct {
				Name    string `json:"name"`
				Version string `json:"version"`
				Rules   []struct {
					ID string `json:"id"`
				} `json:"rules"`
			} `json:"driver"`
		} `json:"tool"`
		Results []struct {
			RuleID  string `json:"ruleId"`
			Level   string `json:"level"`
			Message struct {
				Text string `json:"text"`
			} `json:"message"`
			Locations []struct {
				PhysicalLocation struct {
					ArtifactLocation struct {
						URI string `json:"uri"`
					} `json:"artifactLocation"`
					Region struct {
						StartLine   int `json:"startLine"`
						StartColumn int `json:"startColumn"`
					} `json:"region"`
				} `json:"physicalLocation"`
			} `json:"locations"`
		} `json:"results"`
	} `json:"runs"`
}

func TestWriteSARIF(t *testing.T) {
	reports := []*domain.CheckReport{
		{
			File: "pkg/example.py",
			Violations: []domain.Violation{
				{Rule: "variable-naming", Line: 3, Column: 0, Message: "Variable 'MyVar' should be snake_case"},
			},
			Failures: []domain.CheckFailure{{Rule: "line-length", Error: "rule line-length panicked: boom"}},
		},
		{File: "clean.py", Violations: []domain.Violation{}},
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteSARIF(&buf, reports, "1.2.3"))

	var doc sarifDoc
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "2.1.0", doc.Version)
	require.Len(t, doc.Runs, 1)

	run := doc.Runs[0]
	assert.Equal(t, "pystyle", run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)
	assert.Len(t, run.Tool.Driver.Rules, 16)

	require.Len(t, run.Results, 2)
	res := run.Results[0]
	assert.Equal(t, "variable-naming", res.RuleID)
	assert.Equal(t, "warning", res.Level)
	assert.Equal(t, "Variable 'MyVar' should be snake_case", res.Message.Text)
	require.Len(t, res.Locations, 1)
	assert.Equal(t, "pkg/example.py", res.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, 3, res.Locations[0].PhysicalLocation.Region.StartLine)
	assert.Equal(t, 1, res.Locations[0].PhysicalLocation.Region.StartColumn)

	assert.Equal(t, "error", run.Results[1].Level)
}
