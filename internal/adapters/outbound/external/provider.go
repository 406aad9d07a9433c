package external

import (
	"github.com/hashicorp/go-hclog"

	"github.com/abdidvp/pystyle/internal/domain"
)

// Provider implements domain.ToolProvider. Tools are built per call because
// the commands come from the config of the file being processed.
type Provider struct {
	logger hclog.Logger
}

func NewProvider(logger hclog.Logger) *Provider {
	return &Provider{logger: logger}
}

func (p *Provider) Linter(cfg domain.ExternalConfig) domain.ExternalLinter {
	return NewLinter(cfg.Linter, cfg.TimeoutDuration(), p.logger)
}

func (p *Provider) Formatter(cfg domain.ExternalConfig) domain.ExternalFormatter {
	return NewFormatter(cfg.Formatter, cfg.TimeoutDuration(), p.logger)
}
