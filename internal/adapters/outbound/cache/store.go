// Package cache keeps check results on disk between runs.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/moby/sys/atomicwriter"

	"github.com/abdidvp/pystyle/internal/domain"
)

// Store is a file-based implementation of domain.CheckCacheStore.
type Store struct{}

// New creates a new file-based cache store.
func New() *Store {
	return &Store{}
}

// Load reads the cache kept under root. Returns (nil, nil) if no cache exists.
func (s *Store) Load(root string) (*domain.CheckCache, error) {
	data, err := os.ReadFile(Path(root))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no cache is not an error
		}
		return nil, err
	}

	var cache domain.CheckCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("parsing check cache: %w", err)
	}
	return &cache, nil
}

// Save writes the cache under cache.Root, creating directories as needed.
func (s *Store) Save(cache *domain.CheckCache) error {
	if err := os.MkdirAll(cacheDir(cache.Root), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}

	return atomicwriter.WriteFile(Path(cache.Root), data, 0644)
}

// Invalidate removes the cache file kept under root.
func (s *Store) Invalidate(root string) error {
	if err := os.Remove(Path(root)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func cacheDir(root string) string {
	return filepath.Join(root, ".pystyle", "cache")
}

// Path returns the cache file kept for root.
func Path(root string) string {
	return filepath.Join(cacheDir(root), "check.json")
}
