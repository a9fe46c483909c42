// Package segment reads and writes .ikseg files: immutable units of indexed
// data produced by a single commit, holding postings, stored documents,
// term vectors and norms.
package segment

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"os"
	"sort"

	"github.com/rahulgoswami/indexkit/internal/index"
)

// Reader provides read-only access to one segment file. Postings are read
// lazily; the dictionary and per-document section are loaded at open time.
// Safe for concurrent use.
type Reader struct {
	file     *os.File
	filePath string
	header   segmentHeader
	dict     []DictEntry
	docs     segmentDocs
}

func OpenReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening segment file: %w", err)
	}
	headerBytes := make([]byte, HeaderSize)
	if _, err := f.ReadAt(headerBytes, 0); err != nil {
		f.Close()
		return nil, fmt.Errorf("reading segment header: %w", err)
	}
	header := decodeHeader(headerBytes)
	if header.Magic != MagicBytes {
		f.Close()
		return nil, fmt.Errorf("invalid segment file: bad magic bytes %x", header.Magic)
	}
	if header.Version != FormatVersion {
		f.Close()
		return nil, fmt.Errorf("unsupported segment version %d", header.Version)
	}

	footer := make([]byte, FooterSize)
	if _, err := f.ReadAt(footer, header.DictOffset+header.DictSize); err != nil {
		f.Close()
		return nil, fmt.Errorf("reading segment footer: %w", err)
	}

	dictBytes := make([]byte, header.DictSize)
	if _, err := f.ReadAt(dictBytes, header.DictOffset); err != nil {
		f.Close()
		return nil, fmt.Errorf("reading dictionary: %w", err)
	}
	if got, want := crc32.ChecksumIEEE(dictBytes), binary.LittleEndian.Uint32(footer[0:4]); got != want {
		f.Close()
		return nil, fmt.Errorf("dictionary checksum mismatch: got %x want %x", got, want)
	}
	var dict []DictEntry
	if err := json.Unmarshal(dictBytes, &dict); err != nil {
		f.Close()
		return nil, fmt.Errorf("parsing dictionary: %w", err)
	}

	docsBytes := make([]byte, header.DocsSize)
	if _, err := f.ReadAt(docsBytes, header.DocsOffset); err != nil {
		f.Close()
		return nil, fmt.Errorf("reading document section: %w", err)
	}
	if got, want := crc32.ChecksumIEEE(docsBytes), binary.LittleEndian.Uint32(footer[4:8]); got != want {
		f.Close()
		return nil, fmt.Errorf("document section checksum mismatch: got %x want %x", got, want)
	}
	var docs segmentDocs
	if err := json.Unmarshal(docsBytes, &docs); err != nil {
		f.Close()
		return nil, fmt.Errorf("parsing document section: %w", err)
	}

	return &Reader{
		file:     f,
		filePath: path,
		header:   header,
		dict:     dict,
		docs:     docs,
	}, nil
}

// Postings returns the postings for a (field, term) pair, or nil when the
// pair is absent.
func (r *Reader) Postings(field, term string) (index.PostingList, error) {
	idx := sort.Search(len(r.dict), func(i int) bool {
		if r.dict[i].Field != field {
			return r.dict[i].Field > field
		}
		return r.dict[i].Term >= term
	})
	if idx >= len(r.dict) || r.dict[idx].Field != field || r.dict[idx].Term != term {
		return nil, nil
	}
	entry := r.dict[idx]
	postingsBytes := make([]byte, entry.PostLen)
	if _, err := r.file.ReadAt(postingsBytes, r.header.PostOffset+entry.PostOffset); err != nil {
		return nil, fmt.Errorf("reading postings: %w", err)
	}
	var postings index.PostingList
	if err := json.Unmarshal(postingsBytes, &postings); err != nil {
		return nil, fmt.Errorf("parsing postings: %w", err)
	}
	return postings, nil
}

// StoredDocument returns the stored fields of docID in their original
// insertion order.
func (r *Reader) StoredDocument(docID int) ([]index.StoredField, bool) {
	i := sort.Search(len(r.docs.Stored), func(i int) bool {
		return r.docs.Stored[i].DocID >= docID
	})
	if i >= len(r.docs.Stored) || r.docs.Stored[i].DocID != docID {
		return nil, false
	}
	return r.docs.Stored[i].Fields, true
}

// TermVector returns the recorded vector for a (docID, field) pair.
func (r *Reader) TermVector(docID int, field string) (index.TermVector, bool) {
	i := sort.Search(len(r.docs.Vectors), func(i int) bool {
		return r.docs.Vectors[i].DocID >= docID
	})
	if i >= len(r.docs.Vectors) || r.docs.Vectors[i].DocID != docID {
		return index.TermVector{}, false
	}
	for _, v := range r.docs.Vectors[i].Vectors {
		if v.Field == field {
			return v, true
		}
	}
	return index.TermVector{}, false
}

// Norm returns the length normalization factor for a (docID, field) pair.
func (r *Reader) Norm(docID int, field string) (float32, bool) {
	i := sort.Search(len(r.docs.Norms), func(i int) bool {
		return r.docs.Norms[i].DocID >= docID
	})
	if i >= len(r.docs.Norms) || r.docs.Norms[i].DocID != docID {
		return 0, false
	}
	for _, n := range r.docs.Norms[i].Norms {
		if n.Field == field {
			return n.Norm, true
		}
	}
	return 0, false
}

// Terms returns the number of (field, term) pairs in the dictionary.
func (r *Reader) Terms() int {
	return len(r.dict)
}

func (r *Reader) NumDocs() int {
	return int(r.header.DocCount)
}

func (r *Reader) Close() error {
	return r.file.Close()
}
