package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/abdidvp/pystyle/internal/domain"
)

const (
	FileName      = ".pystyle.yaml"
	pyprojectName = "pyproject.toml"
)

// Loader implements domain.ConfigLoader. It looks for .pystyle.yaml, then a
// [tool.pystyle] table in pyproject.toml, in the file's directory and each
// parent. Values not set in the file keep their defaults.
type Loader struct {
	file string
}

// New creates a Loader.
func New() *Loader { return &Loader{} }

// FromFile creates a Loader that ignores the search and always reads file,
// a .pystyle.yaml style document or a pyproject.toml.
func FromFile(file string) *Loader { return &Loader{file: file} }

// Load resolves the config that applies to path, a file or a directory.
// Returns DefaultConfig when no config file is found.
func (l *Loader) Load(path string) (domain.Config, error) {
	if l.file != "" {
		return loadFile(l.file)
	}
	dir, err := startDir(path)
	if err != nil {
		return domain.Config{}, err
	}

	for {
		cfg, found, err := loadDir(dir)
		if err != nil {
			return domain.Config{}, err
		}
		if found {
			return cfg, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return domain.DefaultConfig(), nil
		}
		dir = parent
	}
}

// Find returns the config file that applies to path, or "" when defaults are
// in effect.
func (l *Loader) Find(path string) (string, error) {
	if l.file != "" {
		return l.file, nil
	}
	dir, err := startDir(path)
	if err != nil {
		return "", err
	}
	for {
		if p := filepath.Join(dir, FileName); exists(p) {
			return p, nil
		}
		if p := filepath.Join(dir, pyprojectName); exists(p) {
			if _, ok, err := loadPyproject(p); err != nil || ok {
				return p, err
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func startDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	info, err := os.Stat(abs)
	if err == nil && info.IsDir() {
		return abs, nil
	}
	return filepath.Dir(abs), nil
}

func loadDir(dir string) (domain.Config, bool, error) {
	if p := filepath.Join(dir, FileName); exists(p) {
		cfg, err := loadYAML(p)
		return cfg, true, err
	}
	if p := filepath.Join(dir, pyprojectName); exists(p) {
		return loadPyproject(p)
	}
	return domain.Config{}, false, nil
}

func loadFile(path string) (domain.Config, error) {
	if filepath.Base(path) == pyprojectName {
		cfg, ok, err := loadPyproject(path)
		if err != nil {
			return domain.Config{}, err
		}
		if !ok {
			return domain.Config{}, fmt.Errorf("%s has no [tool.pystyle] table", path)
		}
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return domain.Config{}, fmt.Errorf("config file: %w", err)
	}
	return loadYAML(path)
}

func loadYAML(path string) (domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Config{}, err
	}

	cfg := domain.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return cfg, nil
}

type pyproject struct {
	Tool struct {
		Pystyle domain.Config `toml:"pystyle"`
	} `toml:"tool"`
}

// loadPyproject reads [tool.pystyle]. A pyproject.toml without that table is
// not a match and the search goes on upward.
func loadPyproject(path string) (domain.Config, bool, error) {
	var doc pyproject
	doc.Tool.Pystyle = domain.DefaultConfig()

	md, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return domain.Config{}, false, fmt.Errorf("parsing %s: %w", pyprojectName, err)
	}
	if !md.IsDefined("tool", "pystyle") {
		return domain.Config{}, false, nil
	}
	cfg := doc.Tool.Pystyle
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, false, fmt.Errorf("invalid [tool.pystyle] in %s: %w", pyprojectName, err)
	}
	return cfg, true, nil
}

// Write stores cfg as .pystyle.yaml in dir.
func Write(dir string, cfg domain.Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	dest := filepath.Join(dir, FileName)
	header := []byte("# pystyle configuration\n\n")
	if err := os.WriteFile(dest, append(header, data...), 0644); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}
	return dest, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}
