// Package fixture provides canned fields and documents with known indexing
// properties, and helpers to write them into a test index. The catalog
// covers every stored/indexed/term-vector/norms combination the write path
// must handle.
package fixture

import (
	"errors"

	"github.com/rahulgoswami/indexkit/internal/document"
)

// ErrFieldExists is returned when registering a duplicate field name.
var ErrFieldExists = errors.New("field already registered")

// Category names a derived view over the registered fields.
type Category string

const (
	CategoryAll          Category = "all"
	CategoryIndexed      Category = "indexed"
	CategoryUnindexed    Category = "unindexed"
	CategoryStored       Category = "stored"
	CategoryUnstored     Category = "unstored"
	CategoryTermVector   Category = "termvector"
	CategoryNoTermVector Category = "notermvector"
	CategoryNoNorms      Category = "nonorms"
	CategoryNoTF         Category = "notf"
)

// Registry holds named field specs and derived category sets. It is built
// once and read-only afterwards: no mutation after initialization, safe for
// concurrent reads.
type Registry struct {
	order  []string
	byName map[string]document.FieldSpec
	sets   map[Category]map[string]document.FieldSpec
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	r := &Registry{
		byName: make(map[string]document.FieldSpec),
		sets:   make(map[Category]map[string]document.FieldSpec),
	}
	for _, c := range []Category{
		CategoryAll, CategoryIndexed, CategoryUnindexed,
		CategoryStored, CategoryUnstored,
		CategoryTermVector, CategoryNoTermVector,
		CategoryNoNorms, CategoryNoTF,
	} {
		r.sets[c] = make(map[string]document.FieldSpec)
	}
	return r
}

// Register adds a field spec and classifies it into every applicable
// category set in one pass. Duplicate names are rejected so the category
// sets cannot drift from the catalog.
func (r *Registry) Register(spec document.FieldSpec) error {
	name := spec.Name()
	if _, exists := r.byName[name]; exists {
		return ErrFieldExists
	}
	r.order = append(r.order, name)
	r.byName[name] = spec

	flags := spec.Flags()
	r.add(CategoryAll, spec)
	if flags.Indexed {
		r.add(CategoryIndexed, spec)
	} else {
		r.add(CategoryUnindexed, spec)
	}
	if flags.Stored {
		r.add(CategoryStored, spec)
	} else {
		r.add(CategoryUnstored, spec)
	}
	if flags.StoreTermVectors {
		r.add(CategoryTermVector, spec)
	}
	if flags.Indexed && !flags.StoreTermVectors {
		r.add(CategoryNoTermVector, spec)
	}
	if flags.OmitNorms {
		r.add(CategoryNoNorms, spec)
	}
	if flags.DocsOnly {
		r.add(CategoryNoTF, spec)
	}
	return nil
}

func (r *Registry) add(c Category, spec document.FieldSpec) {
	r.sets[c][spec.Name()] = spec
}

// Get returns the field registered under name.
func (r *Registry) Get(name string) (document.FieldSpec, error) {
	spec, ok := r.byName[name]
	if !ok {
		return document.FieldSpec{}, document.ErrFieldNotFound
	}
	return spec, nil
}

// Category returns the fields in the given category set, keyed by name.
// The returned map is the registry's backing store and must not be
// modified.
func (r *Registry) Category(c Category) map[string]document.FieldSpec {
	return r.sets[c]
}

// Names returns the field names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered fields.
func (r *Registry) Len() int {
	return len(r.order)
}

// Populate appends every registered field to doc in registration order.
func (r *Registry) Populate(doc *document.Document) {
	for _, name := range r.order {
		doc.Add(r.byName[name])
	}
}
