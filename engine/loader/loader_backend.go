package loader

import (
	"io"

	"github.com/zclconf/go-cty/cty"
)

// loaderBackend defines the generic interface for loading declarations from files or streams.
// Concrete implementations (e.g., hclLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load parses the declaration file at path.
	//
	// Parameters:
	//   - path: the file path to load
	//   - variables: the variables available to expressions
	//
	// Returns:
	//   - Declaration: the decoded declaration
	//   - error: error if loading fails
	Load(path string, variables map[string]cty.Value) (Declaration, error)

	// LoadReader parses a declaration from a reader stream.
	//
	// Parameters:
	//   - name: the name used for the declaration and its diagnostics
	//   - r: the reader providing the declaration source
	//   - variables: the variables available to expressions
	//
	// Returns:
	//   - Declaration: the decoded declaration
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader, variables map[string]cty.Value) (Declaration, error)
}
