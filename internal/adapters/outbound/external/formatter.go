package external

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Formatter implements domain.ExternalFormatter for autopep8.
type Formatter struct {
	cmd command
}

func NewFormatter(argv []string, timeout time.Duration, logger hclog.Logger) *Formatter {
	return &Formatter{cmd: newCommand(argv, timeout, logger)}
}

func (f *Formatter) Name() string { return f.cmd.name() }

// Preview returns the formatter's diff without touching the file.
func (f *Formatter) Preview(ctx context.Context, path string) (string, error) {
	res, err := f.cmd.run(ctx, "--diff", path)
	if err != nil {
		return "", err
	}
	return string(res.stdout), nil
}

// Apply rewrites the file in place.
func (f *Formatter) Apply(ctx context.Context, path string) error {
	_, err := f.cmd.run(ctx, "--in-place", path)
	return err
}
