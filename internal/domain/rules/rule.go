// Package rules implements the style checks. Each rule reads a parsed
// domain.SourceFile and returns its findings in source order; the engine runs
// them in a fixed order and never mutates the file.
package rules

import (
	"fmt"

	"github.com/abdidvp/pystyle/internal/domain"
)

// Context is handed to every rule.
type Context struct {
	File   *domain.SourceFile
	Config domain.Config
}

// Rule is a single style check.
type Rule interface {
	Name() string
	Description() string
	Check(ctx *Context) []domain.Violation
}

// BaseRule carries the metadata shared by every rule.
type BaseRule struct {
	RuleName        string
	RuleDescription string
}

func (r BaseRule) Name() string        { return r.RuleName }
func (r BaseRule) Description() string { return r.RuleDescription }

func (r BaseRule) violation(line, column int, format string, args ...any) domain.Violation {
	return domain.Violation{
		Rule:    r.RuleName,
		Line:    line,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	}
}

type checkFunc func(r BaseRule, ctx *Context) []domain.Violation

type funcRule struct {
	BaseRule
	check checkFunc
}

func (r funcRule) Check(ctx *Context) []domain.Violation { return r.check(r.BaseRule, ctx) }

func newRule(name, description string, check checkFunc) Rule {
	return funcRule{BaseRule: BaseRule{RuleName: name, RuleDescription: description}, check: check}
}

// All returns every rule in engine order.
func All() []Rule {
	return []Rule{
		newRule("variable-naming", "Assignment targets should be snake_case", checkVariableNaming),
		newRule("function-naming", "Function names should be snake_case", checkFunctionNaming),
		newRule("class-naming", "Class names should use CapWords", checkClassNaming),
		newRule("indentation", "Indentation should use multiples of 4 spaces", checkIndentation),
		newRule("blank-lines", "Definitions should be preceded by a blank line", checkBlankLines),
		newRule("docstring", "Functions and classes should have a docstring", checkDocstrings),
		newRule("line-length", "Lines should not exceed the maximum length", checkLineLength),
		newRule("import-order", "Import lines should be sorted", checkImportOrder),
		newRule("trailing-whitespace", "Lines should not end with spaces or tabs", checkTrailingWhitespace),
		newRule("multiple-statements", "One statement per line", checkMultipleStatements),
		newRule("none-comparison", "None should be on the right of an 'is' comparison", checkNoneComparison),
		newRule("semicolon", "Lines should not end with a semicolon", checkSemicolons),
		newRule("mutable-default", "Parameters should not be annotated with list or dict literals", checkMutableDefaults),
		newRule("final-newline", "Files should end with a blank line", checkFinalNewline),
		newRule("unused-import", "Imported names should be used", checkUnusedImports),
		newRule("unused-variable", "Assigned variables should be used", checkUnusedVariables),
	}
}

// Lookup returns the rule with the given name.
func Lookup(name string) (Rule, bool) {
	for _, r := range All() {
		if r.Name() == name {
			return r, true
		}
	}
	return nil, false
}
