// Package history keeps a log of compare runs beside the compared files.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/moby/sys/atomicwriter"

	"github.com/abdidvp/pystyle/internal/domain"
)

// DefaultLimit is how many runs a log keeps before dropping the oldest.
const DefaultLimit = 1000

// CorruptSuffix is appended to a log that could not be read when a new run
// is recorded over it.
const CorruptSuffix = ".corrupt"

// Log implements domain.CompareHistory with one JSON array per directory.
type Log struct {
	limit int
}

type Option func(*Log)

// WithLimit caps the number of runs kept per directory. Values below 1 keep
// every run.
func WithLimit(n int) Option {
	return func(l *Log) { l.limit = n }
}

func New(opts ...Option) *Log {
	l := &Log{limit: DefaultLimit}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the log kept for dir.
func Path(dir string) string {
	return filepath.Join(dir, ".pystyle", "history", "compare.json")
}

// Save appends entry and rewrites the log atomically. An unreadable log is
// renamed with CorruptSuffix and a new one is started.
func (l *Log) Save(dir string, entry domain.HistoryEntry) error {
	fp := Path(dir)
	runs, err := l.Load(dir)
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		if err := os.Rename(fp, fp+CorruptSuffix); err != nil {
			return fmt.Errorf("setting aside unreadable compare history: %w", err)
		}
		runs, err = nil, nil
	}
	if err != nil {
		return err
	}

	runs = append(runs, entry)
	if l.limit > 0 && len(runs) > l.limit {
		runs = runs[len(runs)-l.limit:]
	}

	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return err
	}
	return atomicwriter.WriteFile(fp, data, 0644)
}

// Load returns the runs recorded for dir, oldest first. A missing log is
// empty.
func (l *Log) Load(dir string) ([]domain.HistoryEntry, error) {
	data, err := os.ReadFile(Path(dir))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var runs []domain.HistoryEntry
	if err := json.Unmarshal(data, &runs); err != nil {
		return nil, fmt.Errorf("reading compare history %s: %w", Path(dir), err)
	}
	return runs, nil
}
