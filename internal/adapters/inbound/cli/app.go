package cli

import (
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/abdidvp/pystyle/internal/adapters/outbound/config"
	"github.com/abdidvp/pystyle/internal/adapters/outbound/external"
	"github.com/abdidvp/pystyle/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/pystyle/internal/adapters/outbound/history"
	"github.com/abdidvp/pystyle/internal/adapters/outbound/memprobe"
	"github.com/abdidvp/pystyle/internal/adapters/outbound/parser"
	"github.com/abdidvp/pystyle/internal/adapters/outbound/scanner"
	"github.com/abdidvp/pystyle/internal/adapters/outbound/source"
	"github.com/abdidvp/pystyle/internal/adapters/outbound/writer"
	"github.com/abdidvp/pystyle/internal/application"
	"github.com/abdidvp/pystyle/internal/domain"
	"github.com/abdidvp/pystyle/internal/logging"
)

// rootOptions carries the persistent flags to every subcommand.
type rootOptions struct {
	logLevel   string
	logJSON    bool
	configFile string
}

func (o *rootOptions) configLoader() *config.Loader {
	if o.configFile != "" {
		return config.FromFile(o.configFile)
	}
	return config.New()
}

// app is the set of services one command works with.
type app struct {
	config  *config.Loader
	scanner *scanner.FileScanner
	probe   domain.MemoryProbe
	logger  hclog.Logger

	check   *application.CheckService
	fix     *application.FixService
	compare *application.CompareService
	format  *application.FormatService
}

// newApp wires the adapters into the services. The config that applies to
// path supplies the log level unless a flag or the environment overrides it.
func (o *rootOptions) newApp(cmd *cobra.Command, path string) (*app, error) {
	loader := o.configLoader()

	// 1. Logger. A broken config is reported by the command that loads it.
	var configLevel string
	if cfg, err := loader.Load(path); err == nil {
		configLevel = cfg.LogLevel
	}
	logger, err := logging.New(logging.Options{
		Level:       o.logLevel,
		ConfigLevel: configLevel,
		Output:      cmd.ErrOrStderr(),
		JSON:        o.logJSON,
	})
	if err != nil {
		return nil, err
	}

	// 2. Outbound adapters.
	reader := source.New()
	py := parser.New()
	fs := scanner.New()
	git := gitinfo.New()
	tools := external.NewProvider(logger)

	var probe domain.MemoryProbe
	if p, err := memprobe.New(); err != nil {
		logger.Warn("memory probe unavailable, memory deltas will read 0", "error", err)
	} else {
		probe = p
	}

	// 3. Services.
	return &app{
		config:  loader,
		scanner: fs,
		probe:   probe,
		logger:  logger,
		check:   application.NewCheckService(reader, fs, py, loader, logger),
		fix:     application.NewFixService(reader, py, loader, writer.New(), git, logger),
		compare: application.NewCompareService(reader, py, loader, tools, probe, history.New(), git, logger),
		format:  application.NewFormatService(reader, loader, tools, logger),
	}, nil
}

// rss reads the resident set size, 0 when it is unavailable.
func (a *app) rss() int64 {
	if a.probe == nil {
		return 0
	}
	n, err := a.probe.RSS()
	if err != nil {
		return 0
	}
	return int64(n)
}
