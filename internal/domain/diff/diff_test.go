package diff_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/pystyle/internal/domain/diff"
)

func TestUnified_EqualTextsGiveEmptyDiff(t *testing.T) {
	out, err := diff.Unified("a", "b", "x = 1\n", "x = 1\n")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestUnified_HeaderAndHunk(t *testing.T) {
	out, err := diff.Unified("original/a.py", "fixed/a.py", "MyVar = 1\nprint(MyVar)\n", "my_var = 1\nprint(my_var)\n")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "--- original/a.py\n+++ fixed/a.py\n"))
	assert.Contains(t, out, "-MyVar = 1\n")
	assert.Contains(t, out, "+my_var = 1\n")
	assert.Contains(t, out, "+print(my_var)\n")
}

func TestStats(t *testing.T) {
	out, err := diff.Unified("a", "b", "a\nb\nc\n", "a\nB\nc\nd\n")
	require.NoError(t, err)

	st, err := diff.Stats(out)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Hunks)
	assert.Equal(t, 1, st.Added)
	assert.Equal(t, 1, st.Changed)
	assert.Equal(t, 0, st.Deleted)

	empty, err := diff.Stats("")
	require.NoError(t, err)
	assert.Zero(t, empty)
}

func TestApply_ReproducesTarget(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 30; i++ {
		b.WriteString("line\n")
	}
	original := "import os\n" + b.String() + "def f():\n    pass\n"
	fixed := b.String() + "\ndef f():\n    \"\"\"This is a docstring.\"\"\"\n    pass\n"

	cases := []struct {
		name     string
		from, to string
	}{
		{"two hunks", original, fixed},
		{"insert into empty", "", "x = 1\n"},
		{"delete everything", "x = 1\n", ""},
		{"append at end", "a\n", "a\nb\n"},
		{"insert at start", "b\n", "a\nb\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := diff.Unified("a", "b", tc.from, tc.to)
			require.NoError(t, err)
			got, err := diff.Apply(tc.from, out)
			require.NoError(t, err)
			assert.Equal(t, tc.to, got)
			assert.NoError(t, diff.Verify(tc.from, tc.to, out))
		})
	}
}

func TestApply_MissingFinalNewline(t *testing.T) {
	out, err := diff.Unified("a", "b", "x = 1", "x = 2")
	require.NoError(t, err)
	assert.NoError(t, diff.Verify("x = 1", "x = 2", out))
}

func TestApply_RejectsMismatchedContext(t *testing.T) {
	out, err := diff.Unified("a", "b", "a\nb\nc\n", "a\nB\nc\n")
	require.NoError(t, err)

	_, err = diff.Apply("a\nX\nc\n", out)
	assert.Error(t, err)
}

func TestVerify_DetectsWrongTarget(t *testing.T) {
	out, err := diff.Unified("a", "b", "a\n", "b\n")
	require.NoError(t, err)
	assert.Error(t, diff.Verify("a\n", "c\n", out))
}
