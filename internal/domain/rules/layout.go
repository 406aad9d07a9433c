package rules

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/abdidvp/pystyle/internal/domain"
)

func checkIndentation(r BaseRule, ctx *Context) []domain.Violation {
	var out []domain.Violation
	for i, line := range ctx.File.Lines {
		if !strings.HasPrefix(line, " ") {
			continue
		}
		if ctx.Config.IndentationMode != domain.IndentLiteral {
			if strings.TrimSpace(line) == "" {
				continue
			}
			spaces := len(line) - len(strings.TrimLeft(line, " "))
			if spaces%4 == 0 {
				continue
			}
		}
		out = append(out, r.violation(i+1, 0, "Incorrect indentation at line %d (use 4 spaces)", i+1))
	}
	return out
}

func checkLineLength(r BaseRule, ctx *Context) []domain.Violation {
	limit := ctx.Config.MaxLineLength
	var out []domain.Violation
	for i, line := range ctx.File.Lines {
		if utf8.RuneCountInString(line) > limit {
			out = append(out, r.violation(i+1, 0, "Line %d exceeds %d characters", i+1, limit))
		}
	}
	return out
}

var importLine = regexp.MustCompile(`^(import|from)\s`)

// checkImportOrder compares each import line with the one before it. The
// finding is placed on the first line whose trimmed text matches.
func checkImportOrder(r BaseRule, ctx *Context) []domain.Violation {
	var imports []string
	for _, line := range ctx.File.Lines {
		if importLine.MatchString(line) {
			imports = append(imports, strings.TrimSpace(line))
		}
	}

	var out []domain.Violation
	for i := 1; i < len(imports); i++ {
		if imports[i] >= imports[i-1] {
			continue
		}
		out = append(out, r.violation(firstLineMatching(ctx.File, imports[i]), 0,
			"Imports should be ordered: %s appears before %s", imports[i], imports[i-1]))
	}
	return out
}

func firstLineMatching(f *domain.SourceFile, trimmed string) int {
	for i, line := range f.Lines {
		if strings.TrimSpace(line) == trimmed {
			return i + 1
		}
	}
	return 1
}

func checkTrailingWhitespace(r BaseRule, ctx *Context) []domain.Violation {
	var out []domain.Violation
	for i, line := range ctx.File.Lines {
		if strings.HasSuffix(line, " \n") || strings.HasSuffix(line, "\t\n") {
			out = append(out, r.violation(i+1, utf8.RuneCountInString(line)-1,
				"Trailing whitespace found at the end of line %d", i+1))
		}
	}
	return out
}

func checkMultipleStatements(r BaseRule, ctx *Context) []domain.Violation {
	var out []domain.Violation
	for i, line := range ctx.File.Lines {
		idx := strings.IndexByte(line, ';')
		if idx < 0 {
			continue
		}
		out = append(out, r.violation(i+1, utf8.RuneCountInString(line[:idx]),
			"Multiple statements on a single line at line %d", i+1))
	}
	return out
}

func checkSemicolons(r BaseRule, ctx *Context) []domain.Violation {
	var out []domain.Violation
	for i, line := range ctx.File.Lines {
		if strings.HasSuffix(strings.TrimSpace(line), ";") {
			out = append(out, r.violation(i+1, utf8.RuneCountInString(line)-1,
				"Unnecessary semicolon at the end of line %d", i+1))
		}
	}
	return out
}

// checkFinalNewline wants the last line to be blank, which means a file
// ending in a single newline after code is still flagged.
func checkFinalNewline(r BaseRule, ctx *Context) []domain.Violation {
	n := ctx.File.LineCount()
	if n == 0 {
		return nil
	}
	if strings.TrimSpace(ctx.File.Line(n)) == "" {
		return nil
	}
	return []domain.Violation{r.violation(n, 0, "File should end with a blank line")}
}
