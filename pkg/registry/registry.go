package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/quiltspace/quilt/pkg/domain"
)

// Registry manages the available component descriptors.
//
// It is populated once at process start, in dependency order, and is
// read-only thereafter. The registry is passed by reference into the
// parser and renderer rather than living as an ambient singleton, which
// keeps construction order testable.
type Registry struct {
	mu         sync.RWMutex
	components map[string]*domain.ComponentDescriptor
	sealed     bool
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		components: make(map[string]*domain.ComponentDescriptor),
	}
}

// Register adds a descriptor to the registry.
//
// It fails if the name is already taken (no silent overwrite), if the
// registry has been sealed, or if RequiresParent names a component that
// is not registered yet: descriptors must arrive in dependency order.
func (r *Registry) Register(desc domain.ComponentDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("register %q: registry is sealed", desc.Name)
	}
	if desc.Name == "" {
		return fmt.Errorf("register: descriptor has no name")
	}
	if _, exists := r.components[desc.Name]; exists {
		return fmt.Errorf("register %q: %w", desc.Name, domain.ErrDuplicateComponent)
	}
	if desc.RequiresParent != "" {
		if _, ok := r.components[desc.RequiresParent]; !ok {
			return fmt.Errorf("register %q: required parent %q: %w",
				desc.Name, desc.RequiresParent, domain.ErrComponentNotFound)
		}
	}

	copied := desc
	r.components[desc.Name] = &copied
	return nil
}

// MustRegister registers a descriptor and panics on failure. Registry
// misconfiguration is a developer error and fatal at startup.
func (r *Registry) MustRegister(desc domain.ComponentDescriptor) {
	if err := r.Register(desc); err != nil {
		panic(err)
	}
}

// Seal marks registration complete. Further Register calls fail.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Lookup returns the descriptor for a component name.
// Callers treat a miss as a hard validation error, never a no-op.
func (r *Registry) Lookup(name string) (*domain.ComponentDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	desc, ok := r.components[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, domain.ErrComponentNotFound)
	}
	return desc, nil
}

// Has reports whether a component name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	_, ok := r.components[name]
	r.mu.RUnlock()
	return ok
}

// Names returns all registered component names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PropNames returns every property name declared by any registered
// component. The markup sanitizer builds its attribute allow-list from
// this surface.
func (r *Registry) PropNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, desc := range r.components {
		for prop := range desc.Props {
			seen[prop] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
