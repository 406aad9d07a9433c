package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/abdidvp/pystyle/internal/domain"
	"github.com/abdidvp/pystyle/internal/domain/rules"
	"github.com/abdidvp/pystyle/internal/logging"
)

// CheckService orchestrates the check pipeline:
// resolve paths -> read -> load config -> parse -> run rules.
type CheckService struct {
	sourceLoader
	scanner domain.FileScanner
	logger  hclog.Logger

	cacheStore   domain.CheckCacheStore
	cacheRoot    string
	cacheVersion string
}

func NewCheckService(
	reader domain.SourceReader,
	scanner domain.FileScanner,
	parser domain.Parser,
	config domain.ConfigLoader,
	logger hclog.Logger,
) *CheckService {
	return &CheckService{
		sourceLoader: sourceLoader{reader: reader, config: config, parser: parser},
		scanner:      scanner,
		logger:       logging.OrNull(logger).Named("check"),
	}
}

// WithCache makes CheckPaths reuse results kept by store under root. A cache
// written by a different version is discarded.
func (s *CheckService) WithCache(store domain.CheckCacheStore, root, version string) *CheckService {
	s.cacheStore = store
	s.cacheRoot = root
	s.cacheVersion = version
	return s
}

// CheckFile runs the rule engine over one file. A file that does not parse
// is an error wrapping domain.ErrParseFailure; no rule runs on it.
func (s *CheckService) CheckFile(ctx context.Context, path string) (*domain.CheckReport, error) {
	return s.checkFile(ctx, uuid.NewString(), path, nil)
}

func (s *CheckService) checkFile(ctx context.Context, runID, path string, cache *domain.CheckCache) (*domain.CheckReport, error) {
	content, cfg, err := s.prepare(path)
	if err != nil {
		return nil, err
	}

	var key, contentHash, configHash string
	if cache != nil {
		key, contentHash, configHash = cacheKeys(path, content, cfg)
		if violations, ok := cache.Lookup(key, contentHash, configHash); ok {
			s.logger.Debug("cache hit", "file", path)
			return &domain.CheckReport{RunID: runID, File: path, Violations: violations, Cached: true}, nil
		}
	}

	file, err := s.parse(ctx, path, content)
	if err != nil {
		return nil, err
	}

	violations, failures := rules.NewEngine(cfg).Run(file)
	for _, f := range failures {
		s.logger.Error("rule failed", "file", path, "rule", f.Rule, "error", f.Error)
	}
	s.logger.Debug("checked file", "file", path, "violations", len(violations))

	if cache != nil && len(failures) == 0 {
		cache.Put(key, contentHash, configHash, violations)
	}

	return &domain.CheckReport{
		RunID:      runID,
		File:       path,
		Violations: violations,
		Failures:   failures,
	}, nil
}

// CheckPaths checks files and directories. Directories are scanned for .py
// files. Every report shares one run id. An explicit file with a bad path is
// an error; a file that fails to parse gets a report carrying the error so
// the remaining files are still checked.
func (s *CheckService) CheckPaths(ctx context.Context, paths []string) ([]*domain.CheckReport, error) {
	runID := uuid.NewString()

	// 1. Expand directories.
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%s: %w", p, domain.ErrMissingFile)
			}
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		found, err := s.scanner.Scan(p)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", p, err)
		}
		s.logger.Debug("scanned directory", "dir", p, "files", len(found))
		files = append(files, found...)
	}

	// 2. Check each file, reusing cached results when enabled.
	cache := s.openCache()
	reports := make([]*domain.CheckReport, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		report, err := s.checkFile(ctx, runID, f, cache)
		if errors.Is(err, domain.ErrParseFailure) {
			s.logger.Warn("skipping file that does not parse", "file", f, "error", err)
			reports = append(reports, &domain.CheckReport{RunID: runID, File: f, Violations: []domain.Violation{}, Error: err.Error()})
			continue
		}
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}

	// 3. Keep the results for the next run.
	if cache != nil {
		if err := s.cacheStore.Save(cache); err != nil {
			s.logger.Warn("could not save check cache", "root", s.cacheRoot, "error", err)
		}
	}
	return reports, nil
}

func (s *CheckService) openCache() *domain.CheckCache {
	if s.cacheStore == nil {
		return nil
	}
	cache, err := s.cacheStore.Load(s.cacheRoot)
	if err != nil {
		s.logger.Warn("ignoring unreadable check cache", "root", s.cacheRoot, "error", err)
		cache = nil
	}
	if cache != nil && cache.Version != s.cacheVersion {
		s.logger.Debug("discarding check cache", "cached_version", cache.Version, "version", s.cacheVersion)
		if err := s.cacheStore.Invalidate(s.cacheRoot); err != nil {
			s.logger.Warn("could not remove check cache", "root", s.cacheRoot, "error", err)
		}
		cache = nil
	}
	if cache == nil {
		cache = domain.NewCheckCache(s.cacheRoot, s.cacheVersion)
	}
	return cache
}

// cacheKeys returns the absolute path the cache is keyed by and the hashes
// that decide whether an entry is still valid.
func cacheKeys(path, content string, cfg domain.Config) (key, contentHash, configHash string) {
	key = path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}
	sum := sha256.Sum256([]byte(content))
	contentHash = hex.EncodeToString(sum[:])

	data, _ := json.Marshal(cfg)
	sum = sha256.Sum256(data)
	configHash = hex.EncodeToString(sum[:])
	return key, contentHash, configHash
}
