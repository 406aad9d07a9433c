package application

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/abdidvp/pystyle/internal/domain"
	"github.com/abdidvp/pystyle/internal/domain/compare"
	"github.com/abdidvp/pystyle/internal/domain/rules"
	"github.com/abdidvp/pystyle/internal/logging"
)

// CustomToolName labels the rule engine in comparisons and metrics.
const CustomToolName = "pystyle"

// CompareService runs the rule engine and the external linter on the same
// file, measures both, and partitions their findings.
type CompareService struct {
	sourceLoader
	tools   domain.ToolProvider
	probe   domain.MemoryProbe
	history domain.CompareHistory
	git     domain.GitInfo
	logger  hclog.Logger
	now     func() time.Time
}

func NewCompareService(
	reader domain.SourceReader,
	parser domain.Parser,
	config domain.ConfigLoader,
	tools domain.ToolProvider,
	probe domain.MemoryProbe,
	history domain.CompareHistory,
	git domain.GitInfo,
	logger hclog.Logger,
) *CompareService {
	return &CompareService{
		sourceLoader: sourceLoader{reader: reader, config: config, parser: parser},
		tools:        tools,
		probe:        probe,
		history:      history,
		git:          git,
		logger:       logging.OrNull(logger).Named("compare"),
		now:          time.Now,
	}
}

// Compare runs both tools and records the run in the file's history. A
// history write failure is logged, not returned.
func (s *CompareService) Compare(ctx context.Context, path string) (*domain.Comparison, error) {
	// 1. Custom rules, measured from read to findings.
	var cfg domain.Config
	var failures []domain.CheckFailure
	custom, err := s.measure(CustomToolName, func() ([]domain.FindingKey, error) {
		file, c, err := s.load(ctx, path)
		if err != nil {
			return nil, err
		}
		cfg = c
		var violations []domain.Violation
		violations, failures = rules.NewEngine(cfg).Run(file)
		return compare.CustomKeys(violations), nil
	})
	if err != nil {
		return nil, err
	}
	for _, f := range failures {
		s.logger.Error("rule failed", "file", path, "rule", f.Rule, "error", f.Error)
	}

	// 2. External linter.
	linter := s.tools.Linter(cfg.External)
	external, err := s.measure(linter.Name(), func() ([]domain.FindingKey, error) {
		findings, err := linter.Lint(ctx, path)
		if err != nil {
			return nil, err
		}
		return compare.ExternalKeys(findings), nil
	})
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", linter.Name(), err)
	}

	// 3. Partition.
	customOnly, externalOnly, common := compare.Partition(custom.Findings, external.Findings)
	result := &domain.Comparison{
		File:         path,
		CustomOnly:   customOnly,
		ExternalOnly: externalOnly,
		Common:       common,
		Custom:       custom,
		External:     external,
		Failures:     failures,
	}
	s.logger.Debug("compared", "file", path,
		"custom_only", len(customOnly), "external_only", len(externalOnly), "common", len(common))

	// 4. History.
	s.record(path, result)
	return result, nil
}

// Lint runs only the external linter, with the config that applies to path.
func (s *CompareService) Lint(ctx context.Context, path string) (string, []domain.ExternalFinding, error) {
	if _, err := s.reader.Read(path); err != nil {
		return "", nil, err
	}
	cfg, err := s.config.Load(path)
	if err != nil {
		return "", nil, fmt.Errorf("loading config: %w", err)
	}
	linter := s.tools.Linter(cfg.External)
	findings, err := linter.Lint(ctx, path)
	if err != nil {
		return linter.Name(), nil, fmt.Errorf("running %s: %w", linter.Name(), err)
	}
	return linter.Name(), findings, nil
}

// History returns the compare runs recorded for path, oldest first.
func (s *CompareService) History(path string) ([]domain.HistoryEntry, error) {
	all, err := s.history.Load(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	name := filepath.Base(path)
	entries := make([]domain.HistoryEntry, 0, len(all))
	for _, e := range all {
		if e.File == name {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (s *CompareService) measure(tool string, fn func() ([]domain.FindingKey, error)) (domain.ToolRun, error) {
	before := s.rss()
	start := time.Now()
	keys, err := fn()
	elapsed := time.Since(start)
	if err != nil {
		return domain.ToolRun{}, err
	}
	return domain.ToolRun{
		Tool:        tool,
		Findings:    keys,
		Duration:    elapsed,
		MemoryDelta: s.rss() - before,
	}, nil
}

func (s *CompareService) rss() int64 {
	if s.probe == nil {
		return 0
	}
	v, err := s.probe.RSS()
	if err != nil {
		s.logger.Debug("memory probe failed", "error", err)
		return 0
	}
	return int64(v)
}

func (s *CompareService) record(path string, c *domain.Comparison) {
	if s.history == nil {
		return
	}
	entry := domain.HistoryEntry{
		Timestamp:       s.now().UTC(),
		File:            filepath.Base(path),
		CustomCount:     len(c.Custom.Findings),
		ExternalCount:   len(c.External.Findings),
		CommonCount:     len(c.Common),
		CustomSeconds:   c.Custom.Duration.Seconds(),
		ExternalSeconds: c.External.Duration.Seconds(),
	}
	if s.git != nil && s.git.IsGitRepo(path) {
		if hash, err := s.git.CommitHash(path); err == nil {
			entry.CommitHash = hash
		}
	}
	if err := s.history.Save(filepath.Dir(path), entry); err != nil {
		s.logger.Warn("could not save compare history", "file", path, "error", err)
	}
}
