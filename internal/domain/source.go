package domain

import (
	"strings"

	"github.com/abdidvp/pystyle/internal/domain/syntax"
)

// SourceFile is a parsed Python file. It is built once per invocation and
// shared read-only by every rule and the fixer.
type SourceFile struct {
	Path    string
	Content string
	// Lines keeps each physical line with its terminator.
	Lines []string
	Tree  *syntax.Module

	offsets []int
}

// NewSourceFile splits content into lines and indexes their byte offsets.
func NewSourceFile(path, content string, tree *syntax.Module) *SourceFile {
	f := &SourceFile{Path: path, Content: content, Tree: tree}
	f.Lines = SplitLines(content)
	f.offsets = make([]int, len(f.Lines)+1)
	for i, l := range f.Lines {
		f.offsets[i+1] = f.offsets[i] + len(l)
	}
	return f
}

// SplitLines splits text after every "\n", keeping the terminators.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// NormalizeNewlines converts CRLF and lone CR line endings to LF.
func NormalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

func (f *SourceFile) LineCount() int { return len(f.Lines) }

// Line returns the 1-based line n, or "" when out of range.
func (f *SourceFile) Line(n int) string {
	if n < 1 || n > len(f.Lines) {
		return ""
	}
	return f.Lines[n-1]
}

// LineStart returns the byte offset where 1-based line n begins. Line
// count+1 maps to the end of the content.
func (f *SourceFile) LineStart(n int) int {
	if n < 1 {
		return 0
	}
	if n > len(f.Lines) {
		return len(f.Content)
	}
	return f.offsets[n-1]
}

// LineOf returns the 1-based line containing byte offset off.
func (f *SourceFile) LineOf(off int) int {
	lo, hi := 0, len(f.Lines)
	for lo < hi {
		mid := (lo + hi) / 2
		if f.offsets[mid+1] <= off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo + 1
}
