package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var skipDirs = map[string]bool{
	".git":          true,
	".hg":           true,
	".venv":         true,
	"venv":          true,
	".tox":          true,
	".nox":          true,
	"__pycache__":   true,
	".mypy_cache":   true,
	".pytest_cache": true,
	"node_modules":  true,
	"build":         true,
	"dist":          true,
	".pystyle":      true,
}

// FileScanner implements domain.FileScanner by walking the filesystem.
type FileScanner struct {
	exclude map[string]bool
}

// New returns a scanner that also skips directories named in exclude.
func New(exclude ...string) *FileScanner {
	s := &FileScanner{exclude: make(map[string]bool, len(exclude))}
	for _, p := range exclude {
		s.exclude[strings.TrimSuffix(p, "/")] = true
	}
	return s
}

// Scan returns every .py file under root in lexical order. Paths are joined
// onto root as given. A root that is itself a file is returned as is.
func (s *FileScanner) Scan(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && s.Skips(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type().IsRegular() && strings.HasSuffix(d.Name(), ".py") {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}

// Skips reports whether a directory with this name is never descended into.
func (s *FileScanner) Skips(name string) bool {
	return skipDirs[name] || s.exclude[name] || strings.HasSuffix(name, ".egg-info")
}
