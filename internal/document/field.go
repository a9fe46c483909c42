package document

// FieldFlags describes how a field is handled at index time.
type FieldFlags struct {
	// Stored keeps the raw value retrievable from the segment.
	Stored bool
	// Indexed makes the field searchable through the inverted index.
	Indexed bool
	// Tokenized runs the value through the analyzer; untokenized indexed
	// fields are indexed as a single term.
	Tokenized bool
	// OmitNorms disables the per-field length normalization factor.
	OmitNorms bool
	// StoreTermVectors records a per-document term vector for the field.
	StoreTermVectors bool
	// TermVectorPositions adds term positions to the stored vector.
	TermVectorPositions bool
	// TermVectorOffsets adds character offsets to the stored vector.
	TermVectorOffsets bool
	// DocsOnly indexes document membership only: no term frequencies and
	// no positions are recorded.
	DocsOnly bool
}

// Common flag combinations. Values are copied on use, so deriving a variant
// never mutates these.
var (
	TextStored    = FieldFlags{Stored: true, Indexed: true, Tokenized: true}
	TextUnstored  = FieldFlags{Indexed: true, Tokenized: true}
	KeywordStored = FieldFlags{Stored: true, Indexed: true}
	StoredOnly    = FieldFlags{Stored: true}
)

// WithTermVectors returns a copy with full term vectors (positions and
// offsets) enabled.
func (f FieldFlags) WithTermVectors() FieldFlags {
	f.StoreTermVectors = true
	f.TermVectorPositions = true
	f.TermVectorOffsets = true
	return f
}

// WithTermVectorsOnly returns a copy recording term vectors without
// positions or offsets.
func (f FieldFlags) WithTermVectorsOnly() FieldFlags {
	f.StoreTermVectors = true
	return f
}

// WithOmitNorms returns a copy with norms disabled.
func (f FieldFlags) WithOmitNorms() FieldFlags {
	f.OmitNorms = true
	return f
}

// WithDocsOnly returns a copy that indexes document membership only.
func (f FieldFlags) WithDocsOnly() FieldFlags {
	f.DocsOnly = true
	return f
}

// FieldSpec is a named field value with its indexing properties. It is
// immutable after construction.
type FieldSpec struct {
	name   string
	value  []byte
	binary bool
	flags  FieldFlags
}

// NewTextField creates a text field with the given flags.
func NewTextField(name, value string, flags FieldFlags) FieldSpec {
	return FieldSpec{name: name, value: []byte(value), flags: flags}
}

// NewBinaryField creates a stored-only binary field. Binary payloads are
// never indexed.
func NewBinaryField(name string, value []byte) FieldSpec {
	return FieldSpec{name: name, value: value, binary: true, flags: StoredOnly}
}

// Name returns the field name.
func (s FieldSpec) Name() string { return s.name }

// Value returns the raw payload.
func (s FieldSpec) Value() []byte { return s.value }

// Text returns the payload as a string.
func (s FieldSpec) Text() string { return string(s.value) }

// Binary reports whether the payload is opaque bytes rather than text.
func (s FieldSpec) Binary() bool { return s.binary }

// Flags returns the field's indexing properties.
func (s FieldSpec) Flags() FieldFlags { return s.flags }
