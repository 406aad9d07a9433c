package application_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abdidvp/pystyle/internal/domain"
)

const fixtureDir = "../../testdata/python"

// copyFixture copies a fixture into a temp dir so tests can rewrite it and
// so no config file above the repository leaks into the run.
func copyFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(fixtureDir, name))
	require.NoError(t, err)
	return writeFile(t, t.TempDir(), filepath.Base(name), string(data))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

type fakeLinter struct {
	findings []domain.ExternalFinding
	err      error
	calls    int
}

func (l *fakeLinter) Name() string { return "flake8" }

func (l *fakeLinter) Lint(_ context.Context, path string) ([]domain.ExternalFinding, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	out := make([]domain.ExternalFinding, len(l.findings))
	for i, f := range l.findings {
		f.File = path
		out[i] = f
	}
	return out, nil
}

type fakeFormatter struct {
	diff    string
	err     error
	applied []string
}

func (f *fakeFormatter) Name() string { return "autopep8" }

func (f *fakeFormatter) Preview(context.Context, string) (string, error) {
	return f.diff, f.err
}

func (f *fakeFormatter) Apply(_ context.Context, path string) error {
	f.applied = append(f.applied, path)
	return nil
}

type fakeTools struct {
	linter    *fakeLinter
	formatter *fakeFormatter
	seen      []domain.ExternalConfig
}

func (p *fakeTools) Linter(cfg domain.ExternalConfig) domain.ExternalLinter {
	p.seen = append(p.seen, cfg)
	return p.linter
}

func (p *fakeTools) Formatter(cfg domain.ExternalConfig) domain.ExternalFormatter {
	p.seen = append(p.seen, cfg)
	return p.formatter
}

type fakeGit struct {
	repo     bool
	hash     string
	pristine bool
	err      error
}

func (g fakeGit) IsGitRepo(string) bool { return g.repo }

func (g fakeGit) CommitHash(string) (string, error) { return g.hash, nil }

func (g fakeGit) IsPristine(string) (bool, error) { return g.pristine, g.err }

// stepProbe reports an RSS that grows by step on every call.
type stepProbe struct {
	value, step uint64
}

func (p *stepProbe) RSS() (uint64, error) {
	p.value += p.step
	return p.value, nil
}
