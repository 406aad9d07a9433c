// Package diff renders and reads unified diffs between two versions of one
// file.
package diff

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	godiff "github.com/sourcegraph/go-diff/diff"

	"github.com/abdidvp/pystyle/internal/domain"
)

// ContextLines is the number of unchanged lines shown around each hunk.
const ContextLines = 3

// Unified returns the unified diff from a to b, or "" when they are equal.
// A missing final newline on either side is treated as present.
func Unified(fromLabel, toLabel, a, b string) (string, error) {
	if a == b {
		return "", nil
	}
	out, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        lines(a),
		B:        lines(b),
		FromFile: fromLabel,
		ToFile:   toLabel,
		Context:  ContextLines,
	})
	if err != nil {
		return "", fmt.Errorf("rendering diff: %w", err)
	}
	return out, nil
}

// Stats counts hunks and changed lines in a unified diff.
func Stats(unified string) (domain.DiffStats, error) {
	if unified == "" {
		return domain.DiffStats{}, nil
	}
	fd, err := godiff.ParseFileDiff([]byte(unified))
	if err != nil {
		return domain.DiffStats{}, fmt.Errorf("parsing diff: %w", err)
	}
	st := fd.Stat()
	return domain.DiffStats{
		Hunks:   len(fd.Hunks),
		Added:   int(st.Added),
		Changed: int(st.Changed),
		Deleted: int(st.Deleted),
	}, nil
}

// Apply replays a unified diff over original. Context and removed lines must
// match the original exactly.
func Apply(original, unified string) (string, error) {
	if unified == "" {
		return original, nil
	}
	fd, err := godiff.ParseFileDiff([]byte(unified))
	if err != nil {
		return "", fmt.Errorf("parsing diff: %w", err)
	}

	src := lines(original)
	out := make([]string, 0, len(src))
	idx := 0
	for _, h := range fd.Hunks {
		start := int(h.OrigStartLine) - 1
		if h.OrigLines == 0 {
			// Pure insertion after line OrigStartLine.
			start = int(h.OrigStartLine)
		}
		if start < idx || start > len(src) {
			return "", fmt.Errorf("hunk at line %d is out of order", h.OrigStartLine)
		}
		out = append(out, src[idx:start]...)
		idx = start

		for _, body := range hunkLines(h.Body) {
			if body == "" {
				return "", fmt.Errorf("empty line in hunk at line %d", h.OrigStartLine)
			}
			text := body[1:] + "\n"
			switch body[0] {
			case '+':
				out = append(out, text)
			case '-', ' ':
				if idx >= len(src) || src[idx] != text {
					return "", fmt.Errorf("hunk at line %d does not match line %d", h.OrigStartLine, idx+1)
				}
				if body[0] == ' ' {
					out = append(out, text)
				}
				idx++
			case '\\':
			default:
				return "", fmt.Errorf("unexpected line %q in hunk", body)
			}
		}
	}
	out = append(out, src[idx:]...)
	return strings.Join(out, ""), nil
}

// Verify checks that applying unified to original yields fixed.
func Verify(original, fixed, unified string) error {
	got, err := Apply(original, unified)
	if err != nil {
		return err
	}
	if got != withNewline(fixed) {
		return fmt.Errorf("diff does not reproduce the rewritten text")
	}
	return nil
}

func hunkLines(body []byte) []string {
	text := strings.TrimSuffix(string(body), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func lines(s string) []string {
	return domain.SplitLines(withNewline(s))
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
