package core

import (
	"fmt"
	"sync"
)

// Registry holds source definitions in registration order.
// Processing order of a run is registration order.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Source
	order  []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Source)}
}

// Register adds a source definition.
// Returns an error if the definition is invalid or the name is taken.
func (r *Registry) Register(src Source) error {
	if err := src.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[src.Name]; exists {
		return fmt.Errorf("source already registered: %s", src.Name)
	}

	r.byName[src.Name] = src
	r.order = append(r.order, src.Name)
	return nil
}

// MustRegister adds a source definition and panics on error.
// Use this only for built-in definitions.
func (r *Registry) MustRegister(src Source) {
	if err := r.Register(src); err != nil {
		panic(err)
	}
}

// Get returns a source by name.
func (r *Registry) Get(name string) (Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src, ok := r.byName[name]
	return src, ok
}

// ByFile returns the first source reading the given file name.
func (r *Registry) ByFile(file string) (Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.order {
		if src := r.byName[name]; src.File == file {
			return src, true
		}
	}
	return Source{}, false
}

// All returns every source in registration order.
func (r *Registry) All() []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Source, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.byName[name])
	}
	return result
}

// Count returns the number of registered sources.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
