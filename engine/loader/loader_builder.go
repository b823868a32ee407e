package loader

import (
	"github.com/zclconf/go-cty/cty"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithVariable is an option builder that exposes a variable to declaration expressions.
// Declarations can then size resources relative to it, e.g. `width = screen_width / 2`.
//
// Parameters:
//   - name: the variable name as referenced in declarations
//   - value: the variable value
//
// Returns:
//   - LoaderBuilderOption: a function that applies the variable option to a loader
func WithVariable(name string, value cty.Value) LoaderBuilderOption {
	return func(l *loader) {
		l.variables[name] = value
	}
}

// WithVariables is an option builder that exposes several variables at once.
//
// Parameters:
//   - variables: the variables keyed by name
//
// Returns:
//   - LoaderBuilderOption: a function that applies the variables option to a loader
func WithVariables(variables map[string]cty.Value) LoaderBuilderOption {
	return func(l *loader) {
		for name, value := range variables {
			l.variables[name] = value
		}
	}
}

// WithDeclaration is an option builder that pre-populates the declaration cache.
//
// Parameters:
//   - key: the cache key for the declaration
//   - decl: the declaration to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the declaration option to a loader
func WithDeclaration(key string, decl Declaration) LoaderBuilderOption {
	return func(l *loader) {
		l.declarationCache[key] = decl
	}
}
