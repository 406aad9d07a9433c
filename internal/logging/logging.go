// Package logging builds the hclog logger shared by the CLI, the services
// and the MCP server.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// EnvLevel overrides the configured level when set.
const EnvLevel = "PYSTYLE_LOG_LEVEL"

const defaultLevel = hclog.Warn

// Options selects the logger's level and destination.
type Options struct {
	// Level is the flag value; it wins over the environment and the config.
	Level string
	// ConfigLevel comes from the config file's log_level.
	ConfigLevel string
	Output      io.Writer
	JSON        bool
}

// New returns a logger named "pystyle". Output defaults to stderr so stdout
// stays reserved for reports.
func New(opts Options) (hclog.Logger, error) {
	level, err := ResolveLevel(opts.Level, os.Getenv(EnvLevel), opts.ConfigLevel)
	if err != nil {
		return nil, err
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       "pystyle",
		Level:      level,
		Output:     out,
		JSONFormat: opts.JSON,
	}), nil
}

// ResolveLevel picks the first non-empty candidate, in priority order.
func ResolveLevel(candidates ...string) (hclog.Level, error) {
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		level := hclog.LevelFromString(c)
		if level == hclog.NoLevel {
			return hclog.NoLevel, fmt.Errorf("unknown log level %q", c)
		}
		return level, nil
	}
	return defaultLevel, nil
}

// OrNull returns logger, or a logger that discards everything when it is nil.
func OrNull(logger hclog.Logger) hclog.Logger {
	if logger == nil {
		return hclog.NewNullLogger()
	}
	return logger
}
