// Package writer replaces file contents atomically.
package writer

import (
	"fmt"
	"os"

	"github.com/moby/sys/atomicwriter"
)

// BackupSuffix is appended to the path of a backup copy.
const BackupSuffix = ".bak"

// AtomicWriter implements domain.FileWriter. Writes go to a temporary file in
// the same directory that is renamed over the target, so readers never see a
// partial file.
type AtomicWriter struct{}

func New() *AtomicWriter { return &AtomicWriter{} }

// WriteFile replaces path with data, keeping the existing permissions.
func (w *AtomicWriter) WriteFile(path string, data []byte) error {
	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := atomicwriter.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Backup copies path to path.bak, replacing an older backup.
func (w *AtomicWriter) Backup(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	dest := path + BackupSuffix
	if err := w.WriteFile(dest, data); err != nil {
		return "", err
	}
	return dest, nil
}
