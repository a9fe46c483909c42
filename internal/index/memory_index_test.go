package index

import (
	"fmt"
	"testing"

	"github.com/rahulgoswami/indexkit/internal/analysis"
	"github.com/rahulgoswami/indexkit/internal/document"
)

func addTestDoc(m *MemoryIndex, docID int, specs ...document.FieldSpec) {
	doc := document.New()
	for _, s := range specs {
		doc.Add(s)
	}
	m.AddDocument(docID, doc, analysis.Whitespace{}, ClassicSimilarity{})
}

func TestAddDocumentHonoursFlags(t *testing.T) {
	m := NewMemoryIndex()
	addTestDoc(m, 0,
		document.NewTextField("text", "field field field two text", document.TextStored.WithTermVectors()),
		document.NewTextField("keyword", "Keyword", document.KeywordStored),
		document.NewTextField("unindexed", "unindexed field text", document.StoredOnly),
		document.NewTextField("docsonly", "tf tf tf", document.TextStored.WithDocsOnly()),
		document.NewTextField("nonorms", "aaaNoNorms bbbNoNorms", document.TextStored.WithOmitNorms()),
		document.NewBinaryField("blob", []byte{0xde, 0xad}),
	)

	if m.DocCount() != 1 {
		t.Fatalf("DocCount() = %d, want 1", m.DocCount())
	}

	// Tokenized field: per-term postings with positions.
	p := m.Postings("text", "field")
	if len(p) != 1 || p[0].Frequency != 3 {
		t.Errorf(`Postings(text, "field") = %+v, want freq 3`, p)
	}
	if len(p) == 1 && len(p[0].Positions) != 3 {
		t.Errorf("positions = %v, want 3 entries", p[0].Positions)
	}

	// Untokenized field: single verbatim term, case preserved.
	if p := m.Postings("keyword", "Keyword"); len(p) != 1 {
		t.Errorf(`Postings(keyword, "Keyword") = %+v, want one posting`, p)
	}
	if p := m.Postings("keyword", "keyword"); p != nil {
		t.Errorf("keyword term was lowercased: %+v", p)
	}

	// Unindexed and binary fields: no postings at all.
	if p := m.Postings("unindexed", "unindexed"); p != nil {
		t.Errorf("unindexed field has postings: %+v", p)
	}
	if p := m.Postings("blob", "\xde\xad"); p != nil {
		t.Errorf("binary field has postings: %+v", p)
	}

	// Docs-only: frequency pinned to 1, no positions.
	p = m.Postings("docsonly", "tf")
	if len(p) != 1 || p[0].Frequency != 1 || p[0].Positions != nil {
		t.Errorf("docs-only posting = %+v, want freq 1 without positions", p)
	}

	// Norms present unless omitted; docs-only still norms (three tokens).
	if _, ok := m.Norm(0, "text"); !ok {
		t.Error("norm missing for text field")
	}
	if _, ok := m.Norm(0, "nonorms"); ok {
		t.Error("norm recorded for omit-norms field")
	}
	if _, ok := m.Norm(0, "unindexed"); ok {
		t.Error("norm recorded for unindexed field")
	}

	// Stored values captured verbatim, unstored values absent.
	stored := m.StoredFields(0)
	names := make(map[string]bool)
	for _, f := range stored {
		names[f.Name] = true
	}
	for _, want := range []string{"text", "keyword", "unindexed", "docsonly", "nonorms", "blob"} {
		if !names[want] {
			t.Errorf("stored field %s missing", want)
		}
	}
}

func TestTermVectorCapture(t *testing.T) {
	m := NewMemoryIndex()
	addTestDoc(m, 0,
		document.NewTextField("full", "field field field two text", document.TextStored.WithTermVectors()),
		document.NewTextField("bare", "unstored field text", document.TextUnstored.WithTermVectorsOnly()),
		document.NewTextField("plain", "field one text", document.TextStored),
	)

	vec, ok := m.TermVector(0, "full")
	if !ok {
		t.Fatal("full vector missing")
	}
	wantFreqs := map[string]int{"field": 3, "text": 1, "two": 1}
	if len(vec.Terms) != len(wantFreqs) {
		t.Fatalf("vector terms = %d, want %d", len(vec.Terms), len(wantFreqs))
	}
	prev := ""
	for _, vt := range vec.Terms {
		if vt.Term <= prev {
			t.Errorf("vector terms not sorted: %q after %q", vt.Term, prev)
		}
		prev = vt.Term
		if vt.Frequency != wantFreqs[vt.Term] {
			t.Errorf("term %q freq = %d, want %d", vt.Term, vt.Frequency, wantFreqs[vt.Term])
		}
		if len(vt.Positions) != vt.Frequency || len(vt.Offsets) != vt.Frequency {
			t.Errorf("term %q positions/offsets = %d/%d, want %d each",
				vt.Term, len(vt.Positions), len(vt.Offsets), vt.Frequency)
		}
	}

	vec, ok = m.TermVector(0, "bare")
	if !ok {
		t.Fatal("bare vector missing")
	}
	for _, vt := range vec.Terms {
		if vt.Positions != nil || vt.Offsets != nil {
			t.Errorf("bare vector term %q carries positions/offsets", vt.Term)
		}
	}

	if _, ok := m.TermVector(0, "plain"); ok {
		t.Error("plain field has a vector but never requested one")
	}
}

func TestSnapshotSortedAndComplete(t *testing.T) {
	m := NewMemoryIndex()
	for i := 0; i < 3; i++ {
		addTestDoc(m, i,
			document.NewTextField("title", fmt.Sprintf("doc %d title", i), document.TextStored),
			document.NewTextField("body", "shared body text", document.TextUnstored),
		)
	}
	snap := m.Snapshot()
	if snap.DocCount != 3 {
		t.Fatalf("snapshot DocCount = %d, want 3", snap.DocCount)
	}
	for i := 1; i < len(snap.Entries); i++ {
		a, b := snap.Entries[i-1], snap.Entries[i]
		if a.Field > b.Field || (a.Field == b.Field && a.Term >= b.Term) {
			t.Errorf("entries not sorted: %s:%s before %s:%s", a.Field, a.Term, b.Field, b.Term)
		}
	}
	// "shared" appears in every doc's body.
	for _, e := range snap.Entries {
		if e.Field == "body" && e.Term == "shared" {
			if len(e.Postings) != 3 {
				t.Errorf("shared postings = %d docs, want 3", len(e.Postings))
			}
			for i := 1; i < len(e.Postings); i++ {
				if e.Postings[i-1].DocID >= e.Postings[i].DocID {
					t.Error("postings not sorted by docID")
				}
			}
		}
	}
	if len(snap.Stored) != 3 {
		t.Errorf("stored docs = %d, want 3", len(snap.Stored))
	}
}

func TestReset(t *testing.T) {
	m := NewMemoryIndex()
	addTestDoc(m, 0, document.NewTextField("title", "some text", document.TextStored))
	m.Reset()
	if m.DocCount() != 0 || m.Size() != 0 {
		t.Errorf("after Reset: DocCount=%d Size=%d, want 0/0", m.DocCount(), m.Size())
	}
	if p := m.Postings("title", "some"); p != nil {
		t.Errorf("postings survived Reset: %+v", p)
	}
}

func TestClassicSimilarity(t *testing.T) {
	sim := ClassicSimilarity{}
	if got := sim.ComputeNorm(1); got != 1 {
		t.Errorf("ComputeNorm(1) = %v, want 1", got)
	}
	if got := sim.ComputeNorm(4); got != 0.5 {
		t.Errorf("ComputeNorm(4) = %v, want 0.5", got)
	}
	if got := sim.ComputeNorm(0); got != 0 {
		t.Errorf("ComputeNorm(0) = %v, want 0", got)
	}
}

// BenchmarkMemoryIndexAdd measures per-document insert throughput.
func BenchmarkMemoryIndexAdd(b *testing.B) {
	m := NewMemoryIndex()
	analyzer := analysis.Whitespace{}
	sim := ClassicSimilarity{}
	doc := document.New()
	doc.Add(document.NewTextField("title", "benchmark title", document.TextStored))
	doc.Add(document.NewTextField("body",
		"this is a benchmark document with several terms for testing indexing performance",
		document.TextUnstored))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.AddDocument(i, doc, analyzer, sim)
	}
}
