package template

import (
	"sync"

	"github.com/tormodhaugland/ct/internal/log"
)

// Registry is an ordered collection of templates keyed by unique id.
// Listing order is insertion order. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]Template
}

// NewRegistry builds a registry holding seed, in order. Each seed entry must
// pass Validate and have a unique id.
func NewRegistry(seed ...Template) (*Registry, error) {
	r := &Registry{byID: make(map[string]Template, len(seed))}
	for _, t := range seed {
		valid, err := Validate(t.Candidate())
		if err != nil {
			return nil, err
		}
		if err := r.Insert(valid); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// NewSeededRegistry builds a registry holding only SeedTemplate.
func NewSeededRegistry() *Registry {
	seed := SeedTemplate()
	return &Registry{
		order: []string{seed.ID},
		byID:  map[string]Template{seed.ID: seed},
	}
}

// List returns a snapshot of all templates in insertion order.
func (r *Registry) List() []Template {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Template, len(r.order))
	for i, id := range r.order {
		out[i] = r.byID[id]
	}
	return out
}

// Get returns the template with the given id, if present.
func (r *Registry) Get(id string) (Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	return t, ok
}

// Find is Get with a *TemplateNotFoundError in place of the boolean.
func (r *Registry) Find(id string) (Template, error) {
	t, ok := r.Get(id)
	if !ok {
		return Template{}, &TemplateNotFoundError{ID: id}
	}
	return t, nil
}

// Has reports whether a template with the given id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.Get(id)
	return ok
}

// Insert appends t, failing with *DuplicateIDError if its id is taken.
// On failure the registry is left unchanged.
func (r *Registry) Insert(t Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[t.ID]; exists {
		return &DuplicateIDError{ID: t.ID}
	}
	if r.byID == nil {
		r.byID = make(map[string]Template)
	}
	r.byID[t.ID] = t
	r.order = append(r.order, t.ID)
	log.Debug(log.CatRegistry, "template inserted", "id", t.ID, "count", len(r.order))
	return nil
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
