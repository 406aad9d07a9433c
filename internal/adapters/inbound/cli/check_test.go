package cli_test

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/pystyle/internal/adapters/inbound/cli"
	"github.com/abdidvp/pystyle/internal/domain"
)

func TestCheckCommand_Violations(t *testing.T) {
	out, err := run(t, "check", filepath.Join(fixtureDir, "example.py"))
	assert.True(t, cli.IsFindings(err), "err = %v", err)
	assert.Contains(t, out, "Function 'MyFunction' should be snake_case")
	assert.Contains(t, out, "Run pystyle fix")
}

func TestCheckCommand_Clean(t *testing.T) {
	out, err := run(t, "check", filepath.Join(fixtureDir, "clean.py"))
	require.NoError(t, err)
	assert.Contains(t, out, "No violations found. Your code is clean!")
}

func TestCheckCommand_DirectoryJSON(t *testing.T) {
	out, err := run(t, "check", fixtureDir, "--json")
	assert.True(t, cli.IsFindings(err))

	var reports []domain.CheckReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports), "output should be valid JSON array")
	require.Len(t, reports, 4)
	assert.NotEmpty(t, reports[0].Error, "broken.py should carry its parse error")
	assert.Empty(t, reports[1].Violations, "clean.py")
	assert.Equal(t, reports[0].RunID, reports[3].RunID)
}

func TestCheckCommand_DirectorySummary(t *testing.T) {
	out, err := run(t, "check", fixtureDir)
	assert.True(t, cli.IsFindings(err))
	assert.Contains(t, out, "not checked")
	assert.Contains(t, out, "of 4 files")
}

func TestCheckCommand_SARIF(t *testing.T) {
	out, err := run(t, "check", filepath.Join(fixtureDir, "example.py"), "--sarif")
	assert.True(t, cli.IsFindings(err))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "2.1.0", doc["version"])
}

func TestCheckCommand_Errors(t *testing.T) {
	_, err := run(t, "check", filepath.Join(t.TempDir(), "missing.py"))
	require.Error(t, err)
	assert.False(t, cli.IsFindings(err))
	assert.True(t, errors.Is(err, domain.ErrMissingFile))

	_, err = run(t, "check")
	assert.Error(t, err, "should require a path")

	_, err = run(t, "check", fixtureDir, "--json", "--sarif")
	assert.Error(t, err, "--json and --sarif are exclusive")
}

func TestCheckCommand_ExplicitConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "strict.yaml", "disable: [function-naming, class-naming, variable-naming, docstring, unused-import, unused-variable, import-order, blank-lines, final-newline, mutable-default, none-comparison, semicolon, multiple-statements, indentation, line-length, trailing-whitespace]\n")

	out, err := run(t, "check", filepath.Join(fixtureDir, "example.py"), "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No violations found")
}

func TestRootCommand_BadLogLevel(t *testing.T) {
	_, err := run(t, "check", filepath.Join(fixtureDir, "clean.py"), "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
}

func TestCheckCommand_Cache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "x = 1;\nprint(x)\n\n")

	_, err := run(t, "check", dir, "--cache")
	assert.True(t, cli.IsFindings(err))
	assert.FileExists(t, filepath.Join(dir, ".pystyle", "cache", "check.json"))

	out, err := run(t, "check", dir, "--cache", "--json")
	assert.True(t, cli.IsFindings(err), "cached findings still fail the run")
	var reports []domain.CheckReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	assert.True(t, reports[0].Cached)
	assert.NotEmpty(t, reports[0].Violations)
}
