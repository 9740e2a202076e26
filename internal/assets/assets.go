// Package assets locates scene files and keeps loaded files in memory.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned when no search path contains the file.
var ErrNotFound = errors.New("asset not found")

// Manager loads files from a list of search directories.
type Manager struct {
	paths []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddSearchPath adds a directory to the manager.
// Directories are searched in reverse order (last added = highest priority).
func (m *Manager) AddSearchPath(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("adding search path %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding search path %s: not a directory", dir)
	}

	m.mu.Lock()
	m.paths = append(m.paths, dir)
	m.mu.Unlock()

	return nil
}

// Resolve returns the on-disk path of name. Absolute names are used as
// is; relative names are looked up in the search paths.
func (m *Manager) Resolve(name string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return name, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	// Search directories in reverse order
	for i := len(m.paths) - 1; i >= 0; i-- {
		p := filepath.Join(m.paths[i], name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Load reads name, serving repeated loads from the cache.
func (m *Manager) Load(name string) ([]byte, error) {
	// Check cache first
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	path, err := m.Resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	m.cache.Set(name, data)
	return data, nil
}

// Stats returns the cache hit and miss counts.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Close drops all search paths and cached data.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.paths = nil
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Stats returns the hit and miss counts since the last Clear.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}
