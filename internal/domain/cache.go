package domain

// CheckCache holds the results of earlier checks, keyed by absolute file
// path. Results are only cached for files every rule ran on cleanly.
type CheckCache struct {
	Root    string                 `json:"root"`
	Version string                 `json:"version"`
	Files   map[string]CachedCheck `json:"files"`
}

// CachedCheck is one file's violations together with the hashes of the
// content and config they were computed from.
type CachedCheck struct {
	ContentHash string      `json:"content_hash"`
	ConfigHash  string      `json:"config_hash"`
	Violations  []Violation `json:"violations"`
}

func NewCheckCache(root, version string) *CheckCache {
	return &CheckCache{Root: root, Version: version, Files: make(map[string]CachedCheck)}
}

func (c CachedCheck) IsInvalidated(contentHash, configHash string) bool {
	return c.ContentHash != contentHash || c.ConfigHash != configHash
}

// Lookup returns the cached violations for path when neither the file nor
// its config changed.
func (c *CheckCache) Lookup(path, contentHash, configHash string) ([]Violation, bool) {
	entry, ok := c.Files[path]
	if !ok || entry.IsInvalidated(contentHash, configHash) {
		return nil, false
	}
	if entry.Violations == nil {
		return []Violation{}, true
	}
	return entry.Violations, true
}

func (c *CheckCache) Put(path, contentHash, configHash string, violations []Violation) {
	if c.Files == nil {
		c.Files = make(map[string]CachedCheck)
	}
	c.Files[path] = CachedCheck{ContentHash: contentHash, ConfigHash: configHash, Violations: violations}
}
