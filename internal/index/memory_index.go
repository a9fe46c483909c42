package index

import (
	"sort"
	"sync"

	"github.com/rahulgoswami/indexkit/internal/analysis"
	"github.com/rahulgoswami/indexkit/internal/document"
)

// MemoryIndex buffers documents before a segment flush. It honours each
// field's indexing flags: unindexed fields contribute no postings,
// docs-only fields drop frequencies and positions, stored fields and term
// vectors are captured per document, and norms are computed unless omitted.
type MemoryIndex struct {
	mu       sync.RWMutex
	postings map[string]map[string]map[int]*Posting // field -> term -> docID
	stored   map[int][]StoredField
	vectors  map[int][]TermVector
	norms    map[int][]FieldNorm
	docCount int
	size     int64
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		postings: make(map[string]map[string]map[int]*Posting),
		stored:   make(map[int][]StoredField),
		vectors:  make(map[int][]TermVector),
		norms:    make(map[int][]FieldNorm),
	}
}

// AddDocument indexes every field of doc under the given segment-local
// docID. Tokenized fields run through analyzer; untokenized indexed fields
// are indexed as a single term at position zero.
func (m *MemoryIndex) AddDocument(docID int, doc *document.Document, analyzer analysis.Analyzer, sim Similarity) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, f := range doc.Fields() {
		flags := f.Flags()
		if flags.Stored {
			m.stored[docID] = append(m.stored[docID], StoredField{
				Name:   f.Name(),
				Value:  f.Value(),
				Binary: f.Binary(),
			})
			m.size += int64(len(f.Name()) + len(f.Value()))
		}
		if !flags.Indexed || f.Binary() {
			continue
		}

		var tokens []analysis.Token
		if flags.Tokenized {
			tokens = analyzer.Tokenize(f.Text())
		} else {
			tokens = []analysis.Token{{
				Term:        f.Text(),
				Position:    0,
				StartOffset: 0,
				EndOffset:   len(f.Text()),
			}}
		}
		m.indexField(docID, f.Name(), flags, tokens)
		if !flags.OmitNorms && sim != nil {
			m.norms[docID] = append(m.norms[docID], FieldNorm{
				Field: f.Name(),
				Norm:  sim.ComputeNorm(len(tokens)),
			})
		}
	}
	m.docCount++
}

func (m *MemoryIndex) indexField(docID int, field string, flags document.FieldFlags, tokens []analysis.Token) {
	terms := m.postings[field]
	if terms == nil {
		terms = make(map[string]map[int]*Posting)
		m.postings[field] = terms
	}

	type vectorAcc struct {
		freq      int
		positions []int
		offsets   []Offset
	}
	var acc map[string]*vectorAcc
	if flags.StoreTermVectors {
		acc = make(map[string]*vectorAcc)
	}

	for _, tok := range tokens {
		docs := terms[tok.Term]
		if docs == nil {
			docs = make(map[int]*Posting)
			terms[tok.Term] = docs
		}
		p := docs[docID]
		if p == nil {
			p = &Posting{DocID: docID}
			docs[docID] = p
			m.size += int64(len(tok.Term) + 32)
		}
		if flags.DocsOnly {
			p.Frequency = 1
		} else {
			p.Frequency++
			p.Positions = append(p.Positions, tok.Position)
			m.size += 8
		}

		if acc != nil {
			v := acc[tok.Term]
			if v == nil {
				v = &vectorAcc{}
				acc[tok.Term] = v
			}
			v.freq++
			if flags.TermVectorPositions {
				v.positions = append(v.positions, tok.Position)
			}
			if flags.TermVectorOffsets {
				v.offsets = append(v.offsets, Offset{Start: tok.StartOffset, End: tok.EndOffset})
			}
		}
	}

	if acc != nil {
		vec := TermVector{Field: field, Terms: make([]VectorTerm, 0, len(acc))}
		for term, v := range acc {
			vec.Terms = append(vec.Terms, VectorTerm{
				Term:      term,
				Frequency: v.freq,
				Positions: v.positions,
				Offsets:   v.offsets,
			})
		}
		sort.Slice(vec.Terms, func(i, j int) bool {
			return vec.Terms[i].Term < vec.Terms[j].Term
		})
		m.vectors[docID] = append(m.vectors[docID], vec)
	}
}

// Postings returns the postings for a (field, term) pair, sorted by docID.
func (m *MemoryIndex) Postings(field, term string) PostingList {
	m.mu.RLock()
	defer m.mu.RUnlock()
	docs := m.postings[field][term]
	if docs == nil {
		return nil
	}
	result := make(PostingList, 0, len(docs))
	for _, p := range docs {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DocID < result[j].DocID
	})
	return result
}

// Snapshot copies the buffered index into sorted slices ready for the
// segment writer.
func (m *MemoryIndex) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var snap Snapshot
	snap.DocCount = m.docCount

	for field, terms := range m.postings {
		for term, docs := range terms {
			postings := make(PostingList, 0, len(docs))
			for _, p := range docs {
				postings = append(postings, *p)
			}
			sort.Slice(postings, func(i, j int) bool {
				return postings[i].DocID < postings[j].DocID
			})
			snap.Entries = append(snap.Entries, TermEntry{
				Field:    field,
				Term:     term,
				Postings: postings,
			})
		}
	}
	sort.Slice(snap.Entries, func(i, j int) bool {
		if snap.Entries[i].Field != snap.Entries[j].Field {
			return snap.Entries[i].Field < snap.Entries[j].Field
		}
		return snap.Entries[i].Term < snap.Entries[j].Term
	})

	for docID, fields := range m.stored {
		snap.Stored = append(snap.Stored, StoredDocument{DocID: docID, Fields: fields})
	}
	sort.Slice(snap.Stored, func(i, j int) bool {
		return snap.Stored[i].DocID < snap.Stored[j].DocID
	})

	for docID, vectors := range m.vectors {
		snap.Vectors = append(snap.Vectors, DocVectors{DocID: docID, Vectors: vectors})
	}
	sort.Slice(snap.Vectors, func(i, j int) bool {
		return snap.Vectors[i].DocID < snap.Vectors[j].DocID
	})

	for docID, norms := range m.norms {
		snap.Norms = append(snap.Norms, DocNorms{DocID: docID, Norms: norms})
	}
	sort.Slice(snap.Norms, func(i, j int) bool {
		return snap.Norms[i].DocID < snap.Norms[j].DocID
	})

	return snap
}

// StoredFields returns the stored fields captured for docID in insertion
// order.
func (m *MemoryIndex) StoredFields(docID int) []StoredField {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stored[docID]
}

// TermVector returns the recorded vector for a (docID, field) pair, or
// false when the field did not request vectors.
func (m *MemoryIndex) TermVector(docID int, field string) (TermVector, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, v := range m.vectors[docID] {
		if v.Field == field {
			return v, true
		}
	}
	return TermVector{}, false
}

// Norm returns the recorded norm for a (docID, field) pair, or false when
// the field omitted norms.
func (m *MemoryIndex) Norm(docID int, field string) (float32, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, n := range m.norms[docID] {
		if n.Field == field {
			return n.Norm, true
		}
	}
	return 0, false
}

func (m *MemoryIndex) DocCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.docCount
}

func (m *MemoryIndex) Size() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.size
}

func (m *MemoryIndex) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.postings = make(map[string]map[string]map[int]*Posting)
	m.stored = make(map[int][]StoredField)
	m.vectors = make(map[int][]TermVector)
	m.norms = make(map[int][]FieldNorm)
	m.docCount = 0
	m.size = 0
}
