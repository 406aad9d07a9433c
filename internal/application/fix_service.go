package application

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/abdidvp/pystyle/internal/domain"
	"github.com/abdidvp/pystyle/internal/domain/fixer"
	"github.com/abdidvp/pystyle/internal/logging"
)

// FixService rewrites a file with the fixer's output:
// read -> load config -> parse -> fix -> backup -> write.
type FixService struct {
	sourceLoader
	writer domain.FileWriter
	git    domain.GitInfo
	logger hclog.Logger
}

func NewFixService(
	reader domain.SourceReader,
	parser domain.Parser,
	config domain.ConfigLoader,
	writer domain.FileWriter,
	git domain.GitInfo,
	logger hclog.Logger,
) *FixService {
	return &FixService{
		sourceLoader: sourceLoader{reader: reader, config: config, parser: parser},
		writer:       writer,
		git:          git,
		logger:       logging.OrNull(logger).Named("fix"),
	}
}

// Fix computes the fixed text of path and, unless opts.DryRun, writes it
// back. Nothing is written when any step before the write fails or when the
// text is unchanged. An empty opts.Backup defers to the config.
func (s *FixService) Fix(ctx context.Context, path string, opts domain.FixOptions) (*domain.FixResult, error) {
	// 1. Load and parse.
	file, cfg, err := s.load(ctx, path)
	if err != nil {
		return nil, err
	}

	// 2. Plan and apply fixes in memory.
	res, err := fixer.New(cfg, s.parser).Fix(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("fixing %s: %w", path, err)
	}
	s.logger.Debug("planned fixes", "file", path, "applied", len(res.Applied), "skipped", len(res.Skipped))

	if !res.Changed() || opts.DryRun {
		return res, nil
	}

	// 3. Back up according to policy.
	policy := opts.Backup
	if policy == "" {
		policy = cfg.Backup
	}
	if s.needsBackup(path, policy) {
		backup, err := s.writer.Backup(path)
		if err != nil {
			return res, fmt.Errorf("backing up %s: %w", path, err)
		}
		res.BackupPath = backup
		s.logger.Info("wrote backup", "file", path, "backup", backup)
	}

	// 4. Replace the file.
	if err := s.writer.WriteFile(path, []byte(res.Fixed)); err != nil {
		return res, fmt.Errorf("writing %s: %w", path, err)
	}
	res.Written = true
	s.logger.Info("fixed file", "file", path, "hunks", res.Stats.Hunks)
	return res, nil
}

// needsBackup applies the policy. Under auto, a file git can restore, being
// tracked and unmodified, is not copied.
func (s *FixService) needsBackup(path string, policy domain.BackupPolicy) bool {
	switch policy {
	case domain.BackupNever:
		return false
	case domain.BackupAlways:
		return true
	}
	if s.git == nil {
		return true
	}
	pristine, err := s.git.IsPristine(path)
	if err != nil {
		s.logger.Warn("could not read git status, taking a backup", "file", path, "error", err)
		return true
	}
	return !pristine
}
