package document

import (
	"bytes"
	"errors"
	"testing"
)

func TestDocumentOrderAndGet(t *testing.T) {
	doc := New()
	doc.Add(NewTextField("title", "first", TextStored)).
		Add(NewTextField("body", "second", TextUnstored)).
		Add(NewBinaryField("blob", []byte{1, 2, 3}))

	if doc.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", doc.Len())
	}
	names := []string{"title", "body", "blob"}
	for i, f := range doc.Fields() {
		if f.Name() != names[i] {
			t.Errorf("field %d = %q, want %q", i, f.Name(), names[i])
		}
	}

	f, err := doc.Get("body")
	if err != nil {
		t.Fatalf("Get(body) error: %v", err)
	}
	if f.Text() != "second" {
		t.Errorf("Get(body).Text() = %q, want %q", f.Text(), "second")
	}

	if _, err := doc.Get("missing"); !errors.Is(err, ErrFieldNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrFieldNotFound", err)
	}
}

func TestDocumentAllowsDuplicateNames(t *testing.T) {
	doc := New()
	doc.Add(NewTextField("tag", "one", TextStored))
	doc.Add(NewTextField("tag", "two", TextStored))
	if doc.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", doc.Len())
	}
	f, err := doc.Get("tag")
	if err != nil {
		t.Fatalf("Get(tag) error: %v", err)
	}
	if f.Text() != "one" {
		t.Errorf("Get returns %q, want first match %q", f.Text(), "one")
	}
}

func TestFlagDerivationDoesNotMutateBase(t *testing.T) {
	derived := TextStored.WithTermVectors().WithOmitNorms().WithDocsOnly()
	if TextStored.StoreTermVectors || TextStored.OmitNorms || TextStored.DocsOnly {
		t.Fatal("deriving flags mutated the TextStored base value")
	}
	if !derived.StoreTermVectors || !derived.TermVectorPositions || !derived.TermVectorOffsets {
		t.Error("WithTermVectors did not enable all vector flags")
	}
	if !derived.OmitNorms || !derived.DocsOnly {
		t.Error("chained derivation lost flags")
	}

	tvOnly := TextUnstored.WithTermVectorsOnly()
	if !tvOnly.StoreTermVectors || tvOnly.TermVectorPositions || tvOnly.TermVectorOffsets {
		t.Error("WithTermVectorsOnly should enable vectors without positions or offsets")
	}
}

func TestBinaryField(t *testing.T) {
	payload := []byte("These are some binary field bytes")
	f := NewBinaryField("blob", payload)
	if !f.Binary() {
		t.Error("Binary() = false")
	}
	if !bytes.Equal(f.Value(), payload) {
		t.Errorf("Value() = %q, want %q", f.Value(), payload)
	}
	if f.Flags() != StoredOnly {
		t.Errorf("Flags() = %+v, want StoredOnly", f.Flags())
	}
}
