package store

import (
	"fmt"
	"sync"

	"github.com/tormodhaugland/ct/internal/log"
	"github.com/tormodhaugland/ct/internal/template"
)

// Registry is a template.Registry whose inserts are written through to a DB.
type Registry struct {
	mu  sync.Mutex
	db  *DB
	mem *template.Registry
}

// OpenRegistry loads every stored template into memory, re-validating each row.
// An empty store is seeded with template.SeedTemplate first.
func OpenRegistry(db *DB) (*Registry, error) {
	n, err := db.Count()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		if err := db.Put(template.SeedTemplate()); err != nil {
			return nil, fmt.Errorf("seeding store: %w", err)
		}
		log.Info(log.CatStore, "seeded empty store", "id", template.SeedTemplate().ID)
	}

	rows, err := db.Templates()
	if err != nil {
		return nil, err
	}

	mem, err := template.NewRegistry(rows...)
	if err != nil {
		return nil, fmt.Errorf("loading stored templates: %w", err)
	}

	log.Debug(log.CatStore, "registry loaded", "count", mem.Len())
	return &Registry{db: db, mem: mem}, nil
}

// List returns a snapshot of all templates in insertion order.
func (r *Registry) List() []template.Template {
	return r.mem.List()
}

// Get returns the template with the given id, if present.
func (r *Registry) Get(id string) (template.Template, bool) {
	return r.mem.Get(id)
}

// Find is Get with a *template.TemplateNotFoundError in place of the boolean.
func (r *Registry) Find(id string) (template.Template, error) {
	return r.mem.Find(id)
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	return r.mem.Len()
}

// Insert checks for a duplicate id, writes the row, then appends in memory.
// A failed write leaves both the store and the in-memory registry unchanged.
func (r *Registry) Insert(t template.Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mem.Has(t.ID) {
		return &template.DuplicateIDError{ID: t.ID}
	}
	if err := r.db.Put(t); err != nil {
		log.ErrorErr(log.CatStore, "write failed", err, "id", t.ID)
		return err
	}
	return r.mem.Insert(t)
}
