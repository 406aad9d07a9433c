// Package external runs third-party Python tools as child processes.
package external

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/abdidvp/pystyle/internal/domain"
)

// command is an argv prefix; flags and the file path are appended per call.
type command struct {
	argv    []string
	timeout time.Duration
	logger  hclog.Logger
}

func newCommand(argv []string, timeout time.Duration, logger hclog.Logger) command {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return command{argv: argv, timeout: timeout, logger: logger}
}

func (c command) name() string {
	if len(c.argv) == 0 {
		return ""
	}
	return filepath.Base(c.argv[0])
}

// result is the captured stdout of a finished tool and its exit status.
type result struct {
	stdout []byte
	exit   int
}

// run executes the tool. A non-zero exit is not an error when the tool wrote
// to stdout, since linters exit 1 when they report findings; callers that
// need to tell findings from a crash inspect result.exit.
func (c command) run(ctx context.Context, args ...string) (result, error) {
	if len(c.argv) == 0 {
		return result{}, fmt.Errorf("%w: no command configured", domain.ErrExternalTool)
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	argv := append(append([]string{}, c.argv[1:]...), args...)
	cmd := exec.CommandContext(ctx, c.argv[0], argv...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	start := time.Now()
	err := cmd.Run()
	c.logger.Debug("external tool finished", "tool", c.name(), "args", argv, "duration", time.Since(start), "error", err)

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return result{}, fmt.Errorf("%w: %s timed out after %s", domain.ErrExternalTool, c.name(), c.timeout)
	}
	if ctx.Err() != nil {
		return result{}, ctx.Err()
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr) && stdout.Len() > 0:
		return result{stdout: stdout.Bytes(), exit: exitErr.ExitCode()}, nil
	default:
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return result{}, fmt.Errorf("%w: %s: %s", domain.ErrExternalTool, c.name(), msg)
	}
	return result{stdout: stdout.Bytes()}, nil
}
