package fixture

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rahulgoswami/indexkit/internal/analysis"
	"github.com/rahulgoswami/indexkit/internal/document"
	"github.com/rahulgoswami/indexkit/internal/index"
	"github.com/rahulgoswami/indexkit/internal/segment"
	"github.com/rahulgoswami/indexkit/internal/writer"
)

// BuildDocument creates a deterministic test document: an id field, an
// indexname field, and fieldCount accumulating text fields. field1 holds
// "a<id>"; every later field holds "a<id> b<id>" (the accumulation stops
// after the second token, so field2 onwards are identical).
func BuildDocument(fieldCount, docID int, indexName string) *document.Document {
	keywordTV := document.KeywordStored.WithTermVectors()
	textTV := document.TextStored.WithTermVectors()

	doc := document.New()
	doc.Add(document.NewTextField("id", strconv.Itoa(docID), keywordTV))
	doc.Add(document.NewTextField("indexname", indexName, keywordTV))

	var sb strings.Builder
	sb.WriteString("a")
	sb.WriteString(strconv.Itoa(docID))
	doc.Add(document.NewTextField("field1", sb.String(), textTV))
	sb.WriteString(" b")
	sb.WriteString(strconv.Itoa(docID))
	for i := 1; i < fieldCount; i++ {
		doc.Add(document.NewTextField(fmt.Sprintf("field%d", i+1), sb.String(), textTV))
	}
	return doc
}

// WriteDoc writes a single document into a fresh index at dir and returns
// the descriptor of the committed segment. A nil analyzer defaults to
// whitespace and a nil similarity to the classic norm.
func WriteDoc(dir string, analyzer analysis.Analyzer, sim index.Similarity, doc *document.Document) (segment.SegmentInfo, error) {
	w, err := writer.Open(dir, analyzer, sim)
	if err != nil {
		return segment.SegmentInfo{}, fmt.Errorf("opening writer: %w", err)
	}
	if _, err := w.AddDocument(doc); err != nil {
		w.Close()
		return segment.SegmentInfo{}, fmt.Errorf("adding document: %w", err)
	}
	info, err := w.Commit()
	if err != nil {
		w.Close()
		return segment.SegmentInfo{}, fmt.Errorf("committing: %w", err)
	}
	if err := w.Close(); err != nil {
		return segment.SegmentInfo{}, fmt.Errorf("closing writer: %w", err)
	}
	return info, nil
}
