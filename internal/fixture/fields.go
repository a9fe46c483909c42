package fixture

import (
	"strings"
	"sync"

	"github.com/rahulgoswami/indexkit/internal/document"
)

// Canned field names and values. Each field exercises one combination of
// indexing properties.
const (
	TextField1Name = "textField1"
	Field1Text     = "field one text"

	TextField2Name = "textField2"
	Field2Text     = "field field field two text"

	TextField3Name = "textField3"
	Field3Text     = "aaaNoNorms aaaNoNorms bbbNoNorms"

	KeywordFieldName = "keyField"
	KeywordText      = "Keyword"

	NoNormsFieldName = "omitNorms"
	NoNormsText      = "omitNormsText"

	NoTFFieldName = "omitTermFreqAndPositions"
	NoTFText      = "analyzed with no tf and positions"

	UnindexedFieldName = "unIndField"
	UnindexedFieldText = "unindexed field text"

	UnstoredField1Name = "unStoredField1"
	UnstoredField2Name = "unStoredField2"
	UnstoredFieldText  = "unstored field text"

	TextUtfField1Name = "textField1Utf8"
	FieldUtf1Text     = "field one 一text"

	TextUtfField2Name = "textField2Utf8"
	FieldUtf2Text     = "field field field 一two text"

	LazyFieldName = "lazyField"
	LazyFieldText = "These are some field bytes"

	LazyFieldBinaryName = "lazyFieldBinary"

	LargeLazyFieldName     = "largeLazyField"
	largeLazyFieldSentence = "Lazily loading lengths of language in lieu of laughing "
)

// LazyFieldBinaryBytes is the payload of the canned binary field.
var LazyFieldBinaryBytes = []byte("These are some binary field bytes")

// Field2TermFreqs are the whitespace term frequencies of Field2Text in
// lexicographic term order: field, text, two.
var Field2TermFreqs = []int{3, 1, 1}

// LargeLazyFieldText returns the oversized canned value, built on first use.
var LargeLazyFieldText = sync.OnceValue(func() string {
	return strings.Repeat(largeLazyFieldSentence, 10000)
})

// Catalog builds a fresh registry holding every canned field in its fixed
// registration order.
func Catalog() *Registry {
	tvs := document.TextStored.WithTermVectors()
	r := NewRegistry()
	for _, spec := range []document.FieldSpec{
		document.NewTextField(TextField1Name, Field1Text, document.TextStored),
		document.NewTextField(TextField2Name, Field2Text, tvs),
		document.NewTextField(TextField3Name, Field3Text, document.TextStored.WithOmitNorms()),
		document.NewTextField(KeywordFieldName, KeywordText, document.KeywordStored),
		document.NewTextField(NoNormsFieldName, NoNormsText, document.KeywordStored.WithOmitNorms()),
		document.NewTextField(NoTFFieldName, NoTFText, document.TextStored.WithDocsOnly()),
		document.NewTextField(UnindexedFieldName, UnindexedFieldText, document.StoredOnly),
		document.NewTextField(UnstoredField1Name, UnstoredFieldText, document.TextUnstored),
		document.NewTextField(UnstoredField2Name, UnstoredFieldText, document.TextUnstored.WithTermVectorsOnly()),
		document.NewTextField(TextUtfField1Name, FieldUtf1Text, document.TextStored),
		document.NewTextField(TextUtfField2Name, FieldUtf2Text, tvs),
		document.NewTextField(LazyFieldName, LazyFieldText, document.TextStored),
		document.NewBinaryField(LazyFieldBinaryName, LazyFieldBinaryBytes),
		document.NewTextField(LargeLazyFieldName, LargeLazyFieldText(), document.TextStored),
	} {
		if err := r.Register(spec); err != nil {
			// catalog names are fixed constants, duplicates are a bug
			panic(err)
		}
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the shared catalog instance. The registry is immutable
// after construction, so sharing it across tests is safe.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = Catalog()
	})
	return defaultRegistry
}
