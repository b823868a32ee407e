package loader

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-graph/common"

	"github.com/zclconf/go-cty/cty"
)

// LoaderBackendType identifies the declaration file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeHCL selects the HCL declaration backend.
	BackendTypeHCL LoaderBackendType = iota
)

// ErrUnsupportedFormat is returned when a file extension has no matching backend.
var ErrUnsupportedFormat = errors.New("loader: unsupported declaration format")

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	declarationCache map[string]Declaration
	variables        map[string]cty.Value

	backend loaderBackend
}

// Loader defines the public-facing interface for loading and caching render graph declarations.
// It abstracts the file format behind a backend and manages a cache of previously loaded
// declarations, so a frame setup can be described in a file and applied to a builder each time the
// graph is rebuilt.
type Loader interface {
	// Load parses a declaration file and caches the result.
	// If the declaration is already cached (by file path), the cached version is returned.
	// The backend is selected based on the file extension (.hcl → HCL backend).
	//
	// Parameters:
	//   - path: the file path to the declaration file
	//
	// Returns:
	//   - Declaration: the loaded and cached declaration
	//   - error: ErrUnsupportedFormat for unknown extensions, or a parse/decode error
	Load(path string) (Declaration, error)

	// LoadReader parses a declaration from a reader stream and caches it by the given name.
	//
	// Parameters:
	//   - name: the cache key for the declaration, also used in diagnostics
	//   - r: the reader providing the declaration source
	//
	// Returns:
	//   - Declaration: the loaded declaration
	//   - error: error if parsing or decoding fails
	LoadReader(name string, r io.Reader) (Declaration, error)

	// Get retrieves a cached declaration by name.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - Declaration: the cached declaration
	//   - bool: false if nothing is cached under name
	Get(name string) (Declaration, bool)

	// Declarations returns a copy of the full declaration cache.
	//
	// Returns:
	//   - map[string]Declaration: all cached declarations keyed by name
	Declarations() map[string]Declaration
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeHCL)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		declarationCache: make(map[string]Declaration),
		variables:        make(map[string]cty.Value),
	}

	switch backendType {
	case BackendTypeHCL:
		l.backend = newHCLLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) (Declaration, error) {
	l.mu.RLock()
	if cached, ok := l.declarationCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	backend, err := l.resolveBackend(path)
	if err != nil {
		return Declaration{}, err
	}

	decl, err := backend.Load(path, l.variables)
	if err != nil {
		return Declaration{}, fmt.Errorf("failed to load %s: %w", path, err)
	}

	common.Logger().Debug("loader: declaration loaded", "path", path, "passes", len(decl.Passes), "resources", len(decl.Resources))

	l.mu.Lock()
	l.declarationCache[path] = decl
	l.mu.Unlock()

	return decl, nil
}

func (l *loader) LoadReader(name string, r io.Reader) (Declaration, error) {
	l.mu.RLock()
	if cached, ok := l.declarationCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	if l.backend == nil {
		return Declaration{}, fmt.Errorf("%w: no backend configured", ErrUnsupportedFormat)
	}

	decl, err := l.backend.LoadReader(name, r, l.variables)
	if err != nil {
		return Declaration{}, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}

	l.mu.Lock()
	l.declarationCache[name] = decl
	l.mu.Unlock()

	return decl, nil
}

func (l *loader) Get(name string) (Declaration, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	decl, ok := l.declarationCache[name]
	return decl, ok
}

func (l *loader) Declarations() map[string]Declaration {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return maps.Clone(l.declarationCache)
}

// resolveBackend selects an appropriate loader backend based on the file extension.
// Currently only HCL is supported.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".hcl":
		if l.backend != nil {
			return l.backend, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}
