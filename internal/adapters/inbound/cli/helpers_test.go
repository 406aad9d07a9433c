package cli_test

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abdidvp/pystyle/internal/adapters/inbound/cli"
	"github.com/abdidvp/pystyle/internal/adapters/outbound/config"
	"github.com/abdidvp/pystyle/internal/domain"
)

const fixtureDir = "../../../../testdata/python"

// run executes the root command and returns what it wrote to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runWithContext(t, context.Background(), args...)
}

func runWithContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return buf.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func copyFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(fixtureDir, name))
	require.NoError(t, err)
	return writeFile(t, t.TempDir(), filepath.Base(name), string(data))
}

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

// Scripts standing in for flake8 and autopep8. sh -c passes the appended
// arguments as $0, $1, ...
const (
	fakeLinter    = `printf '%s:1:1: F401 '"'"'os'"'"' imported but unused\n' "$0"; exit 1`
	fakeFormatter = `if [ "$0" = "--diff" ]; then echo "--- original/$1"; else printf 'x = 1\n' > "$1"; fi`
	quietFormat   = `exit 0`
)

// withTools writes a config into dir that runs the given scripts as the
// external linter and formatter.
func withTools(t *testing.T, dir, linter, formatter string) {
	t.Helper()
	cfg := domain.DefaultConfig()
	cfg.External.Linter = []string{"sh", "-c", linter}
	cfg.External.Formatter = []string{"sh", "-c", formatter}
	writeConfig(t, dir, cfg)
}

func writeConfig(t *testing.T, dir string, cfg domain.Config) {
	t.Helper()
	_, err := config.Write(dir, cfg)
	require.NoError(t, err)
}
