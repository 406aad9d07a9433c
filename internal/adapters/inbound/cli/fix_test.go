package cli_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/pystyle/internal/adapters/outbound/writer"
	"github.com/abdidvp/pystyle/internal/domain"
)

func TestFixCommand_DryRun(t *testing.T) {
	p := copyFixture(t, "example.py")
	before := readFile(t, p)

	out, err := run(t, "fix", p, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Custom Tool Fixes Applied")
	assert.Contains(t, out, "+def my_function():")
	assert.Contains(t, out, "dry run, nothing written")
	assert.Equal(t, before, readFile(t, p))
}

func TestFixCommand_Writes(t *testing.T) {
	p := writeFile(t, t.TempDir(), "a.py", "MyVar = 1\nprint(MyVar)\n")

	out, err := run(t, "fix", p, "--backup", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "written")
	assert.Equal(t, "my_var = 1\nprint(my_var)\n", readFile(t, p))
	assert.NoFileExists(t, p+writer.BackupSuffix)
}

func TestFixCommand_JSON(t *testing.T) {
	p := writeFile(t, t.TempDir(), "a.py", "MyVar = 1\nprint(MyVar)\n")

	out, err := run(t, "fix", p, "--backup", "always", "--json")
	require.NoError(t, err)

	var res domain.FixResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Written)
	assert.Equal(t, p+writer.BackupSuffix, res.BackupPath)
	assert.NotEmpty(t, res.Applied)
}

func TestFixCommand_NothingToFix(t *testing.T) {
	out, err := run(t, "fix", copyFixture(t, "clean.py"))
	require.NoError(t, err)
	assert.Contains(t, out, "Custom Tool: No fixes were applied.")
}

func TestFixCommand_Errors(t *testing.T) {
	p := writeFile(t, t.TempDir(), "a.py", "x = 1\n")

	_, err := run(t, "fix", p, "--backup", "sometimes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backup policy")

	_, err = run(t, "fix", copyFixture(t, "broken.py"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrParseFailure)
}
