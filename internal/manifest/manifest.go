// Package manifest reads the .vite/manifest.json file written by `vite build`.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// ErrMalformedManifest is returned when the manifest exists but is not a JSON object
// of chunks.
var ErrMalformedManifest = errors.New("malformed vite manifest")

// Chunk is one manifest entry. Only File and CSS drive tag rendering; the rest
// is kept for inspection.
type Chunk struct {
	File           string   `json:"file,omitempty"`
	CSS            []string `json:"css,omitempty"`
	Src            string   `json:"src,omitempty"`
	Name           string   `json:"name,omitempty"`
	IsEntry        bool     `json:"isEntry,omitempty"`
	Imports        []string `json:"imports,omitempty"`
	DynamicImports []string `json:"dynamicImports,omitempty"`
	Assets         []string `json:"assets,omitempty"`
}

// Manifest maps logical source names (e.g. "src/main.ts") to chunks.
type Manifest map[string]Chunk

// Reader loads a manifest lazily and caches it. Safe for concurrent use: the
// file is read at most once until Invalidate is called.
type Reader struct {
	fsys fs.FS
	name string

	mu       sync.Mutex
	manifest Manifest
	loaded   bool
}

// NewReader returns a Reader for the manifest at path on the local filesystem.
func NewReader(path string) *Reader {
	return NewFSReader(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

// NewFSReader returns a Reader for the manifest stored as name inside fsys,
// e.g. an embedded build.
func NewFSReader(fsys fs.FS, name string) *Reader {
	return &Reader{fsys: fsys, name: name}
}

// Load reads and parses the manifest on first call and returns the cached
// result afterwards. A missing file yields an empty manifest and no error.
// Parse errors are returned and nothing is cached.
func (r *Reader) Load() (Manifest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded {
		return r.manifest, nil
	}

	m, err := r.read()
	if err != nil {
		return nil, err
	}

	r.manifest = m
	r.loaded = true
	return m, nil
}

func (r *Reader) read() (Manifest, error) {
	data, err := fs.ReadFile(r.fsys, r.name)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("vite manifest not found, using empty manifest", "manifest", r.name)
		return Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read vite manifest %q: %w", r.name, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedManifest, r.name, err)
	}
	if m == nil {
		m = Manifest{}
	}

	slog.Info("vite manifest loaded",
		"manifest", r.name,
		"chunks", len(m),
	)

	return m, nil
}

// GetChunk returns the chunk for key, or nil when the key is absent.
// The manifest is loaded first if needed.
func (r *Reader) GetChunk(key string) (*Chunk, error) {
	m, err := r.Load()
	if err != nil {
		return nil, err
	}

	chunk, ok := m[key]
	if !ok {
		return nil, nil
	}
	return &chunk, nil
}

// Entries returns the sorted keys of chunks marked as entry points.
func (r *Reader) Entries() ([]string, error) {
	m, err := r.Load()
	if err != nil {
		return nil, err
	}

	var keys []string
	for k, c := range m {
		if c.IsEntry {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Loaded reports whether a manifest is currently cached.
func (r *Reader) Loaded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loaded
}

// Invalidate drops the cached manifest so the next access re-reads the file.
func (r *Reader) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.manifest = nil
	r.loaded = false
	slog.Debug("vite manifest cache invalidated", "manifest", r.name)
}
