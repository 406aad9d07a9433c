// Package watcher reports changes to Python files under a path.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"

	"github.com/abdidvp/pystyle/internal/logging"
)

// DefaultDebounce coalesces the bursts of events editors produce on save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher delivers changed .py paths one at a time.
type Watcher struct {
	fs       *fsnotify.Watcher
	file     string
	skip     func(name string) bool
	debounce time.Duration
	logger   hclog.Logger
}

// New starts watching root, a .py file or a directory tree. Directories for
// which skip returns true are not watched.
func New(root string, skip func(name string) bool, logger hclog.Logger) (*Watcher, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if skip == nil {
		skip = func(string) bool { return false }
	}
	w := &Watcher{fs: fs, skip: skip, debounce: DefaultDebounce, logger: logging.OrNull(logger).Named("watch")}

	// A single file is watched through its directory; editors often replace
	// the file rather than write to it.
	if !info.IsDir() {
		w.file = filepath.Clean(root)
		err = fs.Add(filepath.Dir(w.file))
	} else {
		err = w.addTree(root)
	}
	if err != nil {
		fs.Close()
		return nil, err
	}
	return w, nil
}

// SetDebounce changes the quiet period before changes are delivered.
func (w *Watcher) SetDebounce(d time.Duration) { w.debounce = d }

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.skip(d.Name()) {
			return filepath.SkipDir
		}
		return w.fs.Add(path)
	})
}

// Run calls onChange for every changed file until ctx is done. Calls are
// sequential; changes that arrive while onChange runs are delivered after it
// returns.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	pending := make(map[string]bool)
	timer := time.NewTimer(time.Hour)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 && w.file == "" {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !w.skip(info.Name()) {
					if err := w.addTree(event.Name); err != nil {
						w.logger.Warn("could not watch new directory", "dir", event.Name, "error", err)
					}
					continue
				}
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Trace("change", "file", event.Name, "op", event.Op.String())
			pending[event.Name] = true
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)

		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			clear(pending)
			for _, p := range paths {
				onChange(p)
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	if w.file != "" {
		return filepath.Clean(event.Name) == w.file
	}
	return strings.HasSuffix(event.Name, ".py")
}

func (w *Watcher) Close() error {
	return w.fs.Close()
}
