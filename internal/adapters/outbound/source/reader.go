// Package source loads Python files from disk.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdidvp/pystyle/internal/domain"
)

const bom = "\ufeff"

// Reader implements domain.SourceReader.
type Reader struct{}

func New() *Reader { return &Reader{} }

// Read validates path and returns its text with a leading BOM dropped and
// line endings normalised to "\n".
func (r *Reader) Read(path string) (string, error) {
	if err := Validate(path); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	text := strings.TrimPrefix(string(data), bom)
	return domain.NormalizeNewlines(text), nil
}

// Validate checks that path names an existing regular .py file.
func Validate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, domain.ErrMissingFile)
		}
		return fmt.Errorf("%s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s: %w", path, domain.ErrNotAFile)
	}
	if !strings.EqualFold(filepath.Ext(path), ".py") {
		return fmt.Errorf("%s: %w", path, domain.ErrNotPython)
	}
	return nil
}
