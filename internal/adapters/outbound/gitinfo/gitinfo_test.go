package gitinfo_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/pystyle/internal/adapters/outbound/gitinfo"
)

func TestGitInfo_IsGitRepo_True(t *testing.T) {
	dir := t.TempDir()
	runGit(t, dir, "init")

	gi := gitinfo.New()
	assert.True(t, gi.IsGitRepo(dir))
}

func TestGitInfo_IsGitRepo_False(t *testing.T) {
	dir := t.TempDir()
	gi := gitinfo.New()
	assert.False(t, gi.IsGitRepo(dir))
}

func TestGitInfo_CommitHash_ReturnsHash(t *testing.T) {
	dir := committedRepo(t)

	gi := gitinfo.New()
	hash, err := gi.CommitHash(filepath.Join(dir, "app.py"))
	require.NoError(t, err)
	assert.Len(t, hash, 40, "should be a full SHA-1 hash")
}

func TestGitInfo_CommitHash_NotGitRepo(t *testing.T) {
	dir := t.TempDir()
	gi := gitinfo.New()
	_, err := gi.CommitHash(dir)
	assert.Error(t, err)
}

func TestGitInfo_IsPristine(t *testing.T) {
	dir := committedRepo(t)
	gi := gitinfo.New()
	file := filepath.Join(dir, "app.py")

	clean, err := gi.IsPristine(file)
	require.NoError(t, err)
	assert.True(t, clean, "committed file should be pristine")

	require.NoError(t, os.WriteFile(file, []byte("x = 2\n"), 0644))
	clean, err = gi.IsPristine(file)
	require.NoError(t, err)
	assert.False(t, clean, "modified file should not be pristine")

	untracked := filepath.Join(dir, "new.py")
	require.NoError(t, os.WriteFile(untracked, []byte("y = 1\n"), 0644))
	clean, err = gi.IsPristine(untracked)
	require.NoError(t, err)
	assert.False(t, clean, "untracked file should not be pristine")
}

func TestGitInfo_IsPristine_OutsideRepo(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "app.py")
	require.NoError(t, os.WriteFile(file, []byte("x = 1\n"), 0644))

	clean, err := gitinfo.New().IsPristine(file)
	require.NoError(t, err)
	assert.False(t, clean)
}

func committedRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@test.com")
	runGit(t, dir, "config", "user.name", "Test")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.py"), []byte("x = 1\n"), 0644))
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "init")
	return dir
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, string(out))
}
