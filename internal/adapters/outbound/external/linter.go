package external

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/abdidvp/pystyle/internal/domain"
)

// findingLine matches "path:line:col: CODE message". The path may contain
// colons, so the greedy first group backs off to the last numeric pair.
var findingLine = regexp.MustCompile(`^(.*):(\d+):(\d+):\s*(\w+\d+)\s*(.*)$`)

// Linter implements domain.ExternalLinter for flake8 and tools that share its
// default output format.
type Linter struct {
	cmd command
}

// NewLinter wraps argv, e.g. ["flake8"] or ["python", "-m", "flake8"].
func NewLinter(argv []string, timeout time.Duration, logger hclog.Logger) *Linter {
	return &Linter{cmd: newCommand(argv, timeout, logger)}
}

func (l *Linter) Name() string { return l.cmd.name() }

// Lint runs the linter on path. A non-zero exit whose output holds no
// finding is a crash, not a clean file.
func (l *Linter) Lint(ctx context.Context, path string) ([]domain.ExternalFinding, error) {
	res, err := l.cmd.run(ctx, path)
	if err != nil {
		return nil, err
	}
	findings, err := ParseFindings(res.stdout, l.cmd.logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrExternalTool, l.Name(), err)
	}
	if res.exit != 0 && len(findings) == 0 {
		return nil, fmt.Errorf("%w: %s exited with status %d: %s",
			domain.ErrExternalTool, l.Name(), res.exit, firstLine(res.stdout))
	}
	return findings, nil
}

// ParseFindings reads linter output line by line. Lines that do not match the
// expected format are skipped.
func ParseFindings(out []byte, logger hclog.Logger) ([]domain.ExternalFinding, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	findings := make([]domain.ExternalFinding, 0)
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		m := findingLine.FindStringSubmatch(sc.Text())
		if m == nil {
			if sc.Text() != "" {
				logger.Debug("skipping unrecognised linter output", "line", sc.Text())
			}
			continue
		}
		line, _ := strconv.Atoi(m[2])
		col, _ := strconv.Atoi(m[3])
		findings = append(findings, domain.ExternalFinding{
			File:    strings.TrimSpace(m[1]),
			Line:    line,
			Column:  col,
			Code:    m[4],
			Message: strings.TrimSpace(m[5]),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading linter output: %w", err)
	}
	return findings, nil
}

func firstLine(out []byte) string {
	text := strings.TrimSpace(string(out))
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return text
}
