// Package document defines the field and document model consumed by the
// index writer: named field values tagged with stored/indexed/term-vector
// properties, assembled into ordered documents.
package document

import "errors"

// ErrFieldNotFound is returned when a field name is not present.
var ErrFieldNotFound = errors.New("field not found")

// Document is an ordered sequence of fields. Duplicate names are allowed at
// this layer; Get returns the first match.
type Document struct {
	fields []FieldSpec
}

// New creates an empty document.
func New() *Document {
	return &Document{}
}

// Add appends a field and returns the document for chaining.
func (d *Document) Add(f FieldSpec) *Document {
	d.fields = append(d.fields, f)
	return d
}

// Get returns the first field with the given name, or ErrFieldNotFound.
func (d *Document) Get(name string) (FieldSpec, error) {
	for _, f := range d.fields {
		if f.Name() == name {
			return f, nil
		}
	}
	return FieldSpec{}, ErrFieldNotFound
}

// Fields returns the fields in insertion order. The returned slice is the
// document's backing store and must not be modified.
func (d *Document) Fields() []FieldSpec {
	return d.fields
}

// Len returns the number of fields.
func (d *Document) Len() int {
	return len(d.fields)
}
