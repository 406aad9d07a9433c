package cli_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/pystyle/internal/domain"
)

func TestCompareCommand_JSON(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	withTools(t, dir, fakeLinter, quietFormat)
	p := writeFile(t, dir, "a.py", "import os\n")

	out, err := run(t, "compare", p, "--json")
	require.NoError(t, err)

	var c domain.Comparison
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.Equal(t, "sh", c.External.Tool)
	assert.Equal(t, []domain.FindingKey{{Line: 1, Column: 1, Message: "F401 'os' imported but unused"}}, c.ExternalOnly)
	assert.NotEmpty(t, c.CustomOnly)
}

func TestCompareCommand_Text(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	withTools(t, dir, fakeLinter, quietFormat)
	p := writeFile(t, dir, "a.py", "import os\n")

	out, err := run(t, "compare", p)
	require.NoError(t, err)
	assert.Contains(t, out, "pystyle vs sh")
	assert.Contains(t, out, "Benchmark")
}

func TestCompareCommand_MetricsAndHistory(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	withTools(t, dir, fakeLinter, quietFormat)
	p := writeFile(t, dir, "a.py", "import os\n")
	metricsPath := filepath.Join(dir, "compare.prom")

	_, err := run(t, "compare", p, "--metrics-out", metricsPath)
	require.NoError(t, err)
	metrics := readFile(t, metricsPath)
	assert.Contains(t, metrics, "pystyle_tool_duration_seconds")
	assert.Contains(t, metrics, `pystyle_findings{partition="only",tool="sh"} 1`)

	out, err := run(t, "compare", p, "--history", "--json")
	require.NoError(t, err)
	var entries []domain.HistoryEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "a.py", entries[0].File)
	assert.Equal(t, 1, entries[0].ExternalCount)

	out, err = run(t, "compare", p, "--history")
	require.NoError(t, err)
	assert.NotContains(t, out, "No compare history found.")
}

func TestCompareCommand_LinterMissing(t *testing.T) {
	dir := t.TempDir()
	cfg := domain.DefaultConfig()
	cfg.External.Linter = []string{"pystyle-no-such-linter"}
	writeConfig(t, dir, cfg)
	p := writeFile(t, dir, "a.py", "x = 1\n")

	_, err := run(t, "compare", p)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExternalTool)
}
