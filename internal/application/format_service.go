package application

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/abdidvp/pystyle/internal/domain"
	"github.com/abdidvp/pystyle/internal/logging"
)

// FormatService drives the external formatter: preview, then apply when the
// preview shows changes.
type FormatService struct {
	reader domain.SourceReader
	config domain.ConfigLoader
	tools  domain.ToolProvider
	logger hclog.Logger
}

func NewFormatService(
	reader domain.SourceReader,
	config domain.ConfigLoader,
	tools domain.ToolProvider,
	logger hclog.Logger,
) *FormatService {
	return &FormatService{
		reader: reader,
		config: config,
		tools:  tools,
		logger: logging.OrNull(logger).Named("format"),
	}
}

// Format returns the formatter's preview diff unmodified. The file is
// rewritten in place only when the diff is non-empty and previewOnly is
// false.
func (s *FormatService) Format(ctx context.Context, path string, previewOnly bool) (string, *domain.FormatResult, error) {
	if _, err := s.reader.Read(path); err != nil {
		return "", nil, err
	}
	cfg, err := s.config.Load(path)
	if err != nil {
		return "", nil, fmt.Errorf("loading config: %w", err)
	}
	formatter := s.tools.Formatter(cfg.External)
	name := formatter.Name()

	// 1. Preview.
	diff, err := formatter.Preview(ctx, path)
	if err != nil {
		return name, nil, fmt.Errorf("running %s: %w", name, err)
	}
	res := &domain.FormatResult{File: path, Diff: diff}
	if diff == "" || previewOnly {
		return name, res, nil
	}

	// 2. Apply.
	if err := formatter.Apply(ctx, path); err != nil {
		return name, res, fmt.Errorf("running %s: %w", name, err)
	}
	res.Applied = true
	s.logger.Info("formatted file", "file", path, "tool", name)
	return name, res, nil
}
