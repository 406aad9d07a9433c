package gitinfo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// GitInfoAdapter implements domain.GitInfo using go-git. Paths may point at
// a file or a directory anywhere inside the work tree.
type GitInfoAdapter struct{}

func New() *GitInfoAdapter {
	return &GitInfoAdapter{}
}

func open(path string) (*git.Repository, error) {
	dir := path
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		dir = filepath.Dir(path)
	}
	return git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
}

func (g *GitInfoAdapter) IsGitRepo(path string) bool {
	_, err := open(path)
	return err == nil
}

func (g *GitInfoAdapter) CommitHash(path string) (string, error) {
	repo, err := open(path)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	return head.Hash().String(), nil
}

// IsPristine reports whether the file is committed at HEAD and has no staged
// or unstaged changes. Files outside a repository are never pristine.
func (g *GitInfoAdapter) IsPristine(path string) (bool, error) {
	repo, err := open(path)
	if err != nil {
		return false, nil
	}
	wt, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("opening worktree: %w", err)
	}
	rel, err := relativeTo(wt.Filesystem.Root(), path)
	if err != nil {
		return false, err
	}

	// 1. Tracked at HEAD.
	head, err := repo.Head()
	if err != nil {
		return false, nil
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return false, fmt.Errorf("reading HEAD commit: %w", err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return false, fmt.Errorf("reading HEAD tree: %w", err)
	}
	if _, err := tree.File(rel); err != nil {
		return false, nil
	}

	// 2. Clean in index and work tree. Unmodified files are absent from the
	// status map.
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("reading status: %w", err)
	}
	fs, ok := status[rel]
	if !ok {
		return true, nil
	}
	return fs.Staging == git.Unmodified && fs.Worktree == git.Unmodified, nil
}

func relativeTo(root, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", fmt.Errorf("locating %s in work tree: %w", path, err)
	}
	return filepath.ToSlash(rel), nil
}
