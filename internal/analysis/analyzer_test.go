package analysis

import (
	"reflect"
	"testing"
)

func TestWhitespaceTokenize(t *testing.T) {
	tokens := Whitespace{}.Tokenize("field field field two text")
	terms := make([]string, len(tokens))
	for i, tok := range tokens {
		terms[i] = tok.Term
		if tok.Position != i {
			t.Errorf("token %d position = %d, want %d", i, tok.Position, i)
		}
	}
	want := []string{"field", "field", "field", "two", "text"}
	if !reflect.DeepEqual(terms, want) {
		t.Fatalf("terms = %v, want %v", terms, want)
	}
	if tokens[0].StartOffset != 0 || tokens[0].EndOffset != 5 {
		t.Errorf("token 0 offsets = [%d,%d), want [0,5)", tokens[0].StartOffset, tokens[0].EndOffset)
	}
	if got := "field field field two text"[tokens[3].StartOffset:tokens[3].EndOffset]; got != "two" {
		t.Errorf("token 3 span = %q, want %q", got, "two")
	}
}

func TestWhitespacePreservesCaseAndUnicode(t *testing.T) {
	tokens := Whitespace{}.Tokenize("field one 一text")
	if len(tokens) != 3 {
		t.Fatalf("token count = %d, want 3", len(tokens))
	}
	if tokens[2].Term != "一text" {
		t.Errorf("token 2 = %q, want %q", tokens[2].Term, "一text")
	}

	tokens = Whitespace{}.Tokenize("Keyword")
	if len(tokens) != 1 || tokens[0].Term != "Keyword" {
		t.Errorf("tokens = %v, want single unmodified Keyword", tokens)
	}
}

func TestWhitespaceEmptyAndBlank(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n"} {
		got := Whitespace{}.Tokenize(text)
		if len(got) != 0 {
			t.Errorf("Tokenize(%q) = %v, want empty", text, got)
		}
	}
}

func TestStandardTokenize(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"The Running dogs", []string{"runn", "dog"}},
		{"distributed-search engine", []string{"distribut", "search", "engine"}},
		{"a an the", nil},
		{"x", nil},
	}
	for _, tt := range tests {
		tokens := Standard{}.Tokenize(tt.text)
		var terms []string
		for _, tok := range tokens {
			terms = append(terms, tok.Term)
		}
		if !reflect.DeepEqual(terms, tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.text, terms, tt.want)
		}
	}
}

func TestStandardOffsetsSpanOriginalWord(t *testing.T) {
	text := "The Running dogs"
	tokens := Standard{}.Tokenize(text)
	if len(tokens) != 2 {
		t.Fatalf("token count = %d, want 2", len(tokens))
	}
	if got := text[tokens[0].StartOffset:tokens[0].EndOffset]; got != "Running" {
		t.Errorf("token 0 span = %q, want %q", got, "Running")
	}
}

func TestByName(t *testing.T) {
	if ByName("standard").Name() != "standard" {
		t.Error(`ByName("standard") is not the standard analyzer`)
	}
	if ByName("whitespace").Name() != "whitespace" {
		t.Error(`ByName("whitespace") is not the whitespace analyzer`)
	}
	if ByName("").Name() != "whitespace" {
		t.Error("ByName default is not whitespace")
	}
}
