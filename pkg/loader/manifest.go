package loader

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Manifest maps resource URLs to fingerprinted file names, e.g.
// {"app.css": "app.3f2a9c1e.css"}. It is safe for concurrent use and may be
// reloaded in place while renders are running.
type Manifest struct {
	mu      sync.RWMutex
	path    string
	entries map[string]string
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{entries: make(map[string]string)}
}

// LoadManifest reads a manifest file. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
func LoadManifest(path string) (*Manifest, error) {
	m := &Manifest{path: path}
	if err := m.Reload(); err != nil {
		return nil, err
	}
	return m, nil
}

// Reload re-reads the manifest from the file it was loaded from. On error
// the previous entries are kept.
func (m *Manifest) Reload() error {
	m.mu.RLock()
	path := m.path
	m.mu.RUnlock()
	if path == "" {
		return nil
	}

	entries, err := readManifest(path)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.entries = entries
	m.mu.Unlock()
	return nil
}

func readManifest(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries map[string]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &entries)
	default:
		err = json.Unmarshal(data, &entries)
	}
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = make(map[string]string)
	}
	return entries, nil
}

// Path returns the file the manifest was loaded from.
func (m *Manifest) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

// Resolve returns the fingerprinted name for source, or source unchanged.
func (m *Manifest) Resolve(source string) string {
	if m == nil {
		return source
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if resolved, ok := m.entries[source]; ok {
		return resolved
	}
	return source
}

// Set adds or updates an entry.
func (m *Manifest) Set(source, resolved string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = make(map[string]string)
	}
	m.entries[source] = resolved
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
