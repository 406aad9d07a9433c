package e2e_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/pystyle/internal/domain"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary before running tests
	dir, err := os.MkdirTemp("", "pystyle-e2e")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	binaryPath = filepath.Join(dir, "pystyle")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/pystyle")
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("build failed: " + string(out))
	}

	os.Exit(m.Run())
}

func fixturePath(name string) string {
	abs, _ := filepath.Abs(filepath.Join("../../testdata/python", name))
	return abs
}

// copyFixture copies a fixture into a temp dir so commands that write leave
// testdata alone.
func copyFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(fixturePath(name))
	require.NoError(t, err)
	p := filepath.Join(t.TempDir(), filepath.Base(name))
	require.NoError(t, os.WriteFile(p, data, 0644))
	return p
}

func run(t *testing.T, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
	}
	return string(out), exitCode
}

// --- Check Tests ---

func TestE2E_CheckExample(t *testing.T) {
	out, code := run(t, "check", fixturePath("example.py"))
	assert.Equal(t, 1, code, "should exit 1 when violations are found")
	assert.Contains(t, out, "Function 'MyFunction' should be snake_case")
	assert.Contains(t, out, "Class 'myclass' should use CapWords")
	assert.NotContains(t, out, "Error:", "findings are not an error message")
}

func TestE2E_CheckClean(t *testing.T) {
	out, code := run(t, "check", fixturePath("clean.py"))
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "No violations found. Your code is clean!")
}

func TestE2E_CheckJSON(t *testing.T) {
	out, code := run(t, "check", fixturePath("example.py"), "--json")
	assert.Equal(t, 1, code)

	var reports []domain.CheckReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	assert.NotEmpty(t, reports[0].RunID)
	assert.NotEmpty(t, reports[0].Violations)
}

func TestE2E_CheckSyntaxError(t *testing.T) {
	out, code := run(t, "check", fixturePath("broken.py"))
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "not checked")
}

func TestE2E_CheckMissingFile(t *testing.T) {
	out, code := run(t, "check", fixturePath("missing.py"))
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Error:")
	assert.Contains(t, out, "does not exist")
}

// --- Fix Tests ---

func TestE2E_FixDryRun(t *testing.T) {
	p := copyFixture(t, "example.py")
	before, err := os.ReadFile(p)
	require.NoError(t, err)

	out, code := run(t, "fix", p, "--dry-run")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "+def my_function():")

	after, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestE2E_FixThenCheck(t *testing.T) {
	p := copyFixture(t, "example.py")

	_, code := run(t, "fix", p, "--backup", "never")
	require.Equal(t, 0, code)

	out, _ := run(t, "check", p)
	assert.NotContains(t, out, "Function 'MyFunction' should be snake_case")
	assert.NotContains(t, out, "not checked", "fixed file should still parse")
}

// --- Other Commands ---

func TestE2E_Rules(t *testing.T) {
	out, code := run(t, "rules")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "(16)")
}

func TestE2E_Init(t *testing.T) {
	dir := t.TempDir()
	out, code := run(t, "init", dir)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Created .pystyle.yaml")
	assert.FileExists(t, filepath.Join(dir, ".pystyle.yaml"))

	out, code = run(t, "init", dir)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "already exists")
}

func TestE2E_Version(t *testing.T) {
	out, code := run(t, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "pystyle")
}
