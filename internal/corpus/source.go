// Package corpus streams bulk documents from external backends (PostgreSQL
// tables, Kafka topics) into a test index, for fixtures that need realistic
// volume rather than canned fields.
package corpus

import (
	"context"

	"github.com/rahulgoswami/indexkit/internal/document"
)

// RawDoc is a source document before field assembly.
type RawDoc struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Source yields documents one at a time. Next returns io.EOF when the
// source is drained.
type Source interface {
	Name() string
	Next(ctx context.Context) (RawDoc, error)
	Close() error
}

// BuildDoc assembles the standard corpus document shape: a stored keyword
// id, a stored tokenized title, and an unstored tokenized body.
func BuildDoc(raw RawDoc) *document.Document {
	doc := document.New()
	doc.Add(document.NewTextField("id", raw.ID, document.KeywordStored))
	doc.Add(document.NewTextField("title", raw.Title, document.TextStored))
	doc.Add(document.NewTextField("body", raw.Body, document.TextUnstored))
	return doc
}
