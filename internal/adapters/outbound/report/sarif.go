// Package report serialises check reports for machines: SARIF 2.1.0 for code
// scanning uploads.
package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/abdidvp/pystyle/internal/domain"
	"github.com/abdidvp/pystyle/internal/domain/rules"
)

const (
	toolName = "pystyle"
	toolURI  = "https://github.com/abdidvp/pystyle"
)

// BuildSARIF converts check reports into one SARIF run. Every rule is
// declared so consumers can show descriptions for findings and for rules
// that found nothing.
func BuildSARIF(reports []*domain.CheckReport, version string) (*sarif.Report, error) {
	doc, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("creating SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(toolName, toolURI)
	if version != "" {
		run.Tool.Driver.Version = &version
	}
	for _, r := range rules.All() {
		run.AddRule(r.Name()).
			WithDescription(r.Description()).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: "warning"})
	}

	for _, rep := range reports {
		uri := filepath.ToSlash(rep.File)
		for _, v := range rep.Violations {
			location := sarif.NewLocation().WithPhysicalLocation(
				sarif.NewPhysicalLocation().
					WithArtifactLocation(sarif.NewArtifactLocation().WithUri(uri)).
					WithRegion(sarif.NewRegion().
						WithStartLine(v.Line).
						WithStartColumn(v.Column + 1)),
			)
			result := sarif.NewRuleResult(v.Rule).
				WithMessage(sarif.NewTextMessage(v.Message)).
				WithLevel("warning").
				WithLocations([]*sarif.Location{location})
			run.AddResult(result)
		}
		for _, f := range rep.Failures {
			run.AddResult(sarif.NewRuleResult(f.Rule).
				WithMessage(sarif.NewTextMessage(f.Error)).
				WithLevel("error").
				WithLocations([]*sarif.Location{sarif.NewLocation().WithPhysicalLocation(
					sarif.NewPhysicalLocation().WithArtifactLocation(sarif.NewArtifactLocation().WithUri(uri)),
				)}))
		}
	}

	doc.AddRun(run)
	return doc, nil
}

// WriteSARIF writes the reports as indented SARIF JSON.
func WriteSARIF(w io.Writer, reports []*domain.CheckReport, version string) error {
	doc, err := BuildSARIF(reports, version)
	if err != nil {
		return err
	}
	return doc.PrettyWrite(w)
}
