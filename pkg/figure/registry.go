package figure

import (
	"fmt"
	"sort"
)

// Registry manages factory registrations by kind name. The zero value is
// not usable; call NewRegistry.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a registry with every built-in figure kind
// registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	// Registration of built-ins cannot collide.
	_ = r.Register(CircleFactory{})
	_ = r.Register(SquareFactory{})
	return r
}

// Register adds a factory. Registering a kind twice is an error.
func (r *Registry) Register(f Factory) error {
	kind := f.Kind()
	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("figure kind %q already registered", kind)
	}
	r.factories[kind] = f
	return nil
}

// Lookup returns the factory for a kind.
func (r *Registry) Lookup(kind string) (Factory, error) {
	f, exists := r.factories[kind]
	if !exists {
		return nil, fmt.Errorf("figure kind %q not registered", kind)
	}
	return f, nil
}

// Create dispatches to the registered factory for kind.
func (r *Registry) Create(kind string, dim float64) (Description, error) {
	f, err := r.Lookup(kind)
	if err != nil {
		return Description{}, err
	}
	return f.Create(dim)
}

// Kinds returns all registered kind names, sorted.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
