package index

// Offset is a character offset span in the original field text.
type Offset struct {
	Start int `json:"s"`
	End   int `json:"e"`
}

// Posting records one document's occurrences of a term within a field.
// Positions are empty for docs-only fields.
type Posting struct {
	DocID     int   `json:"d"`
	Frequency int   `json:"f"`
	Positions []int `json:"p,omitempty"`
}

type PostingList []Posting

// TermEntry is a (field, term) pair with its postings, the unit handed to
// the segment writer.
type TermEntry struct {
	Field    string
	Term     string
	Postings PostingList
}

// StoredField is a retrievable field value kept verbatim in the segment.
type StoredField struct {
	Name   string `json:"n"`
	Value  []byte `json:"v"`
	Binary bool   `json:"b,omitempty"`
}

// StoredDocument is one document's stored fields in insertion order.
type StoredDocument struct {
	DocID  int           `json:"d"`
	Fields []StoredField `json:"f"`
}

// VectorTerm is one term of a per-document term vector. Positions and
// offsets are present only when the field's flags request them.
type VectorTerm struct {
	Term      string   `json:"t"`
	Frequency int      `json:"f"`
	Positions []int    `json:"p,omitempty"`
	Offsets   []Offset `json:"o,omitempty"`
}

// TermVector is the recorded vector for one field of one document, terms
// sorted lexicographically.
type TermVector struct {
	Field string       `json:"n"`
	Terms []VectorTerm `json:"t"`
}

// DocVectors groups a document's term vectors.
type DocVectors struct {
	DocID   int          `json:"d"`
	Vectors []TermVector `json:"v"`
}

// FieldNorm is the length-normalization factor for one field of one
// document.
type FieldNorm struct {
	Field string  `json:"n"`
	Norm  float32 `json:"x"`
}

// DocNorms groups a document's field norms.
type DocNorms struct {
	DocID int         `json:"d"`
	Norms []FieldNorm `json:"f"`
}

// Snapshot is a point-in-time copy of the memory index, sorted and ready
// for segment serialisation.
type Snapshot struct {
	Entries  []TermEntry
	Stored   []StoredDocument
	Vectors  []DocVectors
	Norms    []DocNorms
	DocCount int
}
