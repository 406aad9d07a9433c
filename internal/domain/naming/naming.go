// Package naming holds the Python naming conventions the rules check and the
// conversions the fixer applies.
package naming

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/camelcase"
)

var (
	snakeCase = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	capWords  = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
)

func IsSnakeCase(name string) bool { return snakeCase.MatchString(name) }
func IsCapWords(name string) bool  { return capWords.MatchString(name) }

var keywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
}

// IsKeyword reports whether name is a reserved Python keyword.
func IsKeyword(name string) bool { return keywords[name] }

// ToSnakeCase converts MyVariable to my_variable. Leading and trailing
// underscores are kept; digits stay attached to the word before them.
func ToSnakeCase(name string) string {
	lead, core, trail := splitUnderscores(name)
	var words []string
	for _, part := range strings.Split(core, "_") {
		for _, w := range camelcase.Split(part) {
			if w == "" {
				continue
			}
			if isDigits(w) && len(words) > 0 {
				words[len(words)-1] += w
				continue
			}
			words = append(words, strings.ToLower(w))
		}
	}
	return lead + strings.Join(words, "_") + trail
}

// ToCapWords converts my_class to MyClass: each word gets an upper-case
// first letter and underscores between words are dropped.
func ToCapWords(name string) string {
	lead, core, trail := splitUnderscores(name)
	var b strings.Builder
	b.WriteString(lead)
	for _, part := range strings.Split(core, "_") {
		for _, w := range camelcase.Split(part) {
			r, size := utf8.DecodeRuneInString(w)
			if size == 0 {
				continue
			}
			b.WriteRune(unicode.ToUpper(r))
			b.WriteString(w[size:])
		}
	}
	b.WriteString(trail)
	return b.String()
}

func splitUnderscores(name string) (lead, core, trail string) {
	core = strings.TrimLeft(name, "_")
	lead = name[:len(name)-len(core)]
	trimmed := strings.TrimRight(core, "_")
	trail = core[len(trimmed):]
	return lead, trimmed, trail
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
