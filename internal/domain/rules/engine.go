package rules

import (
	"fmt"

	"github.com/abdidvp/pystyle/internal/domain"
)

// Engine runs the enabled rules over one file.
type Engine struct {
	config domain.Config
	rules  []Rule
}

// NewEngine builds an engine with every rule the config does not disable.
func NewEngine(config domain.Config) *Engine {
	return NewEngineWithRules(config, All())
}

// NewEngineWithRules builds an engine over a custom rule list, keeping its
// order and dropping disabled rules.
func NewEngineWithRules(config domain.Config, rules []Rule) *Engine {
	e := &Engine{config: config}
	for _, r := range rules {
		if !config.IsDisabled(r.Name()) {
			e.rules = append(e.rules, r)
		}
	}
	return e
}

// Rules returns the enabled rules in the order they run.
func (e *Engine) Rules() []Rule { return e.rules }

// Run applies every rule and concatenates the findings in rule order. A rule
// that panics is reported as a failure and the others still run.
func (e *Engine) Run(file *domain.SourceFile) ([]domain.Violation, []domain.CheckFailure) {
	ctx := &Context{File: file, Config: e.config}
	violations := make([]domain.Violation, 0)
	var failures []domain.CheckFailure

	for _, r := range e.rules {
		found, err := runRule(r, ctx)
		if err != nil {
			failures = append(failures, domain.CheckFailure{Rule: r.Name(), Error: err.Error()})
			continue
		}
		violations = append(violations, found...)
	}
	return violations, failures
}

func runRule(r Rule, ctx *Context) (found []domain.Violation, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("rule %s panicked: %v", r.Name(), p)
		}
	}()
	return r.Check(ctx), nil
}
