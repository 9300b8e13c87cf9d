package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// indexEntry represents collected metadata for a single note. It carries
// enough for listing without re-parsing the note or its sidecar.
type indexEntry struct {
	ID           string    `json:"id"`
	Title        string    `json:"title,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	Rev          int       `json:"rev"`
	CommentCount int       `json:"commentCount"`
	LastModified time.Time `json:"lastModified"`
}

// index represents the persistent cache state.
type index struct {
	Version int                    `json:"version"`
	Entries map[string]*indexEntry `json:"entries"` // key is note path relative to root
	dirty   bool
	mu      sync.RWMutex
}

// cache manages the loading, updating, and saving of the index.
type cache struct {
	Path  string // path to {root}/{systemDir}/index.json
	index *index
}

// newCache initializes a cache under the vault's system directory.
func newCache(rootPath, systemDir string) *cache {
	return &cache{
		Path: filepath.Join(rootPath, systemDir, "index.json"),
		index: &index{
			Version: 1,
			Entries: make(map[string]*indexEntry),
		},
	}
}

// Load reads the cache from disk. A missing or unreadable index is not an
// error; the cache simply starts empty and is rebuilt during List.
func (c *cache) Load() error {
	c.index.mu.Lock()
	defer c.index.mu.Unlock()

	data, err := os.ReadFile(c.Path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read cache: %w", err)
	}

	var idx index
	if err := json.Unmarshal(data, &idx); err != nil {
		// Corrupt cache: start fresh rather than failing the listing.
		c.index.Entries = make(map[string]*indexEntry)
		return nil
	}
	if idx.Entries == nil {
		idx.Entries = make(map[string]*indexEntry)
	}
	c.index.Version = idx.Version
	c.index.Entries = idx.Entries
	return nil
}

// Get returns the cached entry for relPath when its recorded mtime is not
// older than the file's effective mtime (note and sidecar combined).
func (c *cache) Get(relPath string, mtime time.Time) (*indexEntry, bool) {
	c.index.mu.RLock()
	defer c.index.mu.RUnlock()

	entry, ok := c.index.Entries[relPath]
	if !ok || mtime.After(entry.LastModified) {
		return nil, false
	}
	return entry, true
}

// Set records or replaces the entry for relPath.
func (c *cache) Set(relPath string, entry *indexEntry) {
	c.index.mu.Lock()
	defer c.index.mu.Unlock()
	c.index.Entries[relPath] = entry
	c.index.dirty = true
}

// Prune drops entries whose files were not seen during the latest walk.
func (c *cache) Prune(seen map[string]bool) {
	c.index.mu.Lock()
	defer c.index.mu.Unlock()
	for key := range c.index.Entries {
		if !seen[key] {
			delete(c.index.Entries, key)
			c.index.dirty = true
		}
	}
}

// Len returns the number of cached entries.
func (c *cache) Len() int {
	c.index.mu.RLock()
	defer c.index.mu.RUnlock()
	return len(c.index.Entries)
}

// Save writes the cache back to disk when something changed.
func (c *cache) Save() error {
	c.index.mu.Lock()
	defer c.index.mu.Unlock()

	if !c.index.dirty {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(c.Path), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(c.index, "", "  ")
	if err != nil {
		return err
	}
	if err := writeFileAtomic(c.Path, data, 0644); err != nil {
		return err
	}
	c.index.dirty = false
	return nil
}
