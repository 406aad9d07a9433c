package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// IndentationMode selects how the indentation rule reads leading spaces.
type IndentationMode string

const (
	// IndentStrict flags non-blank lines whose leading space count is not a
	// multiple of four.
	IndentStrict IndentationMode = "strict"
	// IndentLiteral flags every line that starts with a space.
	IndentLiteral IndentationMode = "literal"
)

// ImportGranularity selects which name of an import is checked for use.
type ImportGranularity string

const (
	// ImportBound uses the name the statement binds: "import a.b" binds "a".
	ImportBound ImportGranularity = "bound"
	// ImportLiteral uses the dotted module or imported name as written.
	ImportLiteral ImportGranularity = "literal"
)

// ValidRules enumerates every rule name in engine order.
var ValidRules = []string{
	"variable-naming",
	"function-naming",
	"class-naming",
	"indentation",
	"blank-lines",
	"docstring",
	"line-length",
	"import-order",
	"trailing-whitespace",
	"multiple-statements",
	"none-comparison",
	"semicolon",
	"mutable-default",
	"final-newline",
	"unused-import",
	"unused-variable",
}

const DefaultDocstring = "This is a docstring."

// Config holds settings loaded from .pystyle.yaml or [tool.pystyle] in
// pyproject.toml.
type Config struct {
	IndentationMode      IndentationMode   `yaml:"indentation_mode"      toml:"indentation_mode"      json:"indentation_mode"      validate:"oneof=strict literal"`
	ImportGranularity    ImportGranularity `yaml:"import_granularity"    toml:"import_granularity"    json:"import_granularity"    validate:"oneof=bound literal"`
	MaxLineLength        int               `yaml:"max_line_length"       toml:"max_line_length"       json:"max_line_length"       validate:"gte=1,lte=1000"`
	Disable              []string          `yaml:"disable"               toml:"disable"               json:"disable,omitempty"`
	DocstringPlaceholder string            `yaml:"docstring_placeholder" toml:"docstring_placeholder" json:"docstring_placeholder" validate:"required"`
	Backup               BackupPolicy      `yaml:"backup"                toml:"backup"                json:"backup"                validate:"oneof=auto always never"`
	External             ExternalConfig    `yaml:"external"              toml:"external"              json:"external"`
	LogLevel             string            `yaml:"log_level"             toml:"log_level"             json:"log_level,omitempty"   validate:"omitempty,oneof=trace debug info warn error off"`
}

// ExternalConfig configures the external linter and formatter commands. The
// file path is appended to each command.
type ExternalConfig struct {
	Linter    []string `yaml:"linter"    toml:"linter"    json:"linter"    validate:"min=1,dive,required"`
	Formatter []string `yaml:"formatter" toml:"formatter" json:"formatter" validate:"min=1,dive,required"`
	// Timeout bounds each invocation in seconds. Zero means no limit.
	Timeout int `yaml:"timeout" toml:"timeout" json:"timeout" validate:"gte=0"`
}

// TimeoutDuration returns the configured timeout, zero when unbounded.
func (e ExternalConfig) TimeoutDuration() time.Duration {
	return time.Duration(e.Timeout) * time.Second
}

// DefaultConfig returns the settings used when no config file is found.
func DefaultConfig() Config {
	return Config{
		IndentationMode:      IndentStrict,
		ImportGranularity:    ImportBound,
		MaxLineLength:        79,
		DocstringPlaceholder: DefaultDocstring,
		Backup:               BackupAuto,
		External: ExternalConfig{
			Linter:    []string{"flake8"},
			Formatter: []string{"autopep8"},
		},
	}
}

// IsDisabled reports whether the named rule is turned off.
func (c Config) IsDisabled(rule string) bool {
	for _, d := range c.Disable {
		if d == rule {
			return true
		}
	}
	return false
}

var validate = validator.New()

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	for _, name := range c.Disable {
		if !isValidRule(name) {
			return fmt.Errorf("unknown rule %q in disable", name)
		}
	}

	ph := c.DocstringPlaceholder
	if strings.Contains(ph, `"""`) || strings.ContainsAny(ph, "\n\r\\") || strings.HasSuffix(ph, `"`) {
		return fmt.Errorf("docstring_placeholder must be a single line without backslashes, triple quotes or a trailing quote")
	}

	return nil
}

func isValidRule(name string) bool {
	for _, r := range ValidRules {
		if r == name {
			return true
		}
	}
	return false
}
