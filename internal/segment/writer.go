package segment

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"time"

	"github.com/rahulgoswami/indexkit/internal/index"
)

// MagicBytes identifies a valid .ikseg segment file.
const (
	MagicBytes    uint32 = 0x494B5347
	FormatVersion uint32 = 1
	HeaderSize    int    = 80
	FooterSize    int    = 16
)

// segmentHeader is the fixed-size header written at the start of every
// segment.
type segmentHeader struct {
	Magic      uint32
	Version    uint32
	TermCount  uint32
	DocCount   uint32
	CreatedAt  int64
	PostOffset int64
	PostSize   int64
	DocsOffset int64
	DocsSize   int64
	DictOffset int64
	DictSize   int64
}

// DictEntry maps a (field, term) pair to its postings offset, length, and
// document frequency in the segment file.
type DictEntry struct {
	Field      string `json:"n"`
	Term       string `json:"t"`
	PostOffset int64  `json:"o"`
	PostLen    int    `json:"l"`
	DocFreq    int    `json:"d"`
}

// segmentDocs is the per-document section: stored fields, term vectors and
// norms, each sorted by docID.
type segmentDocs struct {
	Stored  []index.StoredDocument `json:"stored"`
	Vectors []index.DocVectors     `json:"vectors,omitempty"`
	Norms   []index.DocNorms       `json:"norms,omitempty"`
}

// SegmentInfo describes an immutable segment produced by a single commit.
type SegmentInfo struct {
	Name      string
	Path      string
	DocCount  int
	TermCount int
	SizeBytes int64
	CreatedAt time.Time
	Checksum  uint32
}

// Writer serialises memory-index snapshots into new .ikseg segment files.
type Writer struct {
	dataDir string
}

// NewWriter creates a Writer that writes segments into the given directory.
func NewWriter(dataDir string) *Writer {
	return &Writer{dataDir: dataDir}
}

// Write atomically creates a new segment file from the snapshot. It writes
// to a .tmp file first and renames on success.
func (w *Writer) Write(snap index.Snapshot) (SegmentInfo, error) {
	if snap.DocCount == 0 {
		return SegmentInfo{}, fmt.Errorf("cannot write empty segment")
	}
	createdAt := time.Now()
	segmentName := fmt.Sprintf("seg_%d.ikseg", createdAt.UnixNano())
	finalPath := filepath.Join(w.dataDir, segmentName)
	tmpPath := finalPath + ".tmp"

	if err := os.MkdirAll(w.dataDir, 0755); err != nil {
		return SegmentInfo{}, fmt.Errorf("creating segment directory: %w", err)
	}
	f, err := os.Create(tmpPath)
	if err != nil {
		return SegmentInfo{}, fmt.Errorf("creating temp segment file: %w", err)
	}
	defer f.Close()

	header := segmentHeader{
		Magic:     MagicBytes,
		Version:   FormatVersion,
		TermCount: uint32(len(snap.Entries)),
		DocCount:  uint32(snap.DocCount),
		CreatedAt: createdAt.Unix(),
	}
	headerBytes := make([]byte, HeaderSize)
	if _, err := f.Write(headerBytes); err != nil {
		return SegmentInfo{}, fmt.Errorf("reserving header: %w", err)
	}

	postingsStart, _ := f.Seek(0, 1)
	dict := make([]DictEntry, 0, len(snap.Entries))
	for _, entry := range snap.Entries {
		offset, _ := f.Seek(0, 1)
		postingsData, err := json.Marshal(entry.Postings)
		if err != nil {
			return SegmentInfo{}, fmt.Errorf("marshaling postings for %s:%s: %w", entry.Field, entry.Term, err)
		}
		if _, err := f.Write(postingsData); err != nil {
			return SegmentInfo{}, fmt.Errorf("writing postings for %s:%s: %w", entry.Field, entry.Term, err)
		}
		dict = append(dict, DictEntry{
			Field:      entry.Field,
			Term:       entry.Term,
			PostOffset: offset - postingsStart,
			PostLen:    len(postingsData),
			DocFreq:    len(entry.Postings),
		})
	}
	postingsEnd, _ := f.Seek(0, 1)

	docsData, err := json.Marshal(segmentDocs{
		Stored:  snap.Stored,
		Vectors: snap.Vectors,
		Norms:   snap.Norms,
	})
	if err != nil {
		return SegmentInfo{}, fmt.Errorf("marshaling document section: %w", err)
	}
	if _, err := f.Write(docsData); err != nil {
		return SegmentInfo{}, fmt.Errorf("writing document section: %w", err)
	}
	docsEnd, _ := f.Seek(0, 1)

	dictData, err := json.Marshal(dict)
	if err != nil {
		return SegmentInfo{}, fmt.Errorf("marshaling dictionary: %w", err)
	}
	if _, err := f.Write(dictData); err != nil {
		return SegmentInfo{}, fmt.Errorf("writing dictionary: %w", err)
	}
	dictEnd, _ := f.Seek(0, 1)

	checksum := crc32.ChecksumIEEE(dictData)
	footer := make([]byte, FooterSize)
	binary.LittleEndian.PutUint32(footer[0:4], checksum)
	binary.LittleEndian.PutUint32(footer[4:8], crc32.ChecksumIEEE(docsData))
	if _, err := f.Write(footer); err != nil {
		return SegmentInfo{}, fmt.Errorf("writing footer: %w", err)
	}

	header.PostOffset = postingsStart
	header.PostSize = postingsEnd - postingsStart
	header.DocsOffset = postingsEnd
	header.DocsSize = docsEnd - postingsEnd
	header.DictOffset = docsEnd
	header.DictSize = dictEnd - docsEnd
	encodeHeader(headerBytes, header)
	if _, err := f.WriteAt(headerBytes, 0); err != nil {
		return SegmentInfo{}, fmt.Errorf("updating header: %w", err)
	}
	if err := f.Sync(); err != nil {
		return SegmentInfo{}, fmt.Errorf("syncing segment file: %w", err)
	}
	f.Close()
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return SegmentInfo{}, fmt.Errorf("renaming segment file: %w", err)
	}

	return SegmentInfo{
		Name:      segmentName,
		Path:      finalPath,
		DocCount:  snap.DocCount,
		TermCount: len(snap.Entries),
		SizeBytes: dictEnd + int64(FooterSize),
		CreatedAt: createdAt,
		Checksum:  checksum,
	}, nil
}

func encodeHeader(buf []byte, h segmentHeader) {
	binary.LittleEndian.PutUint32(buf[0:4], h.Magic)
	binary.LittleEndian.PutUint32(buf[4:8], h.Version)
	binary.LittleEndian.PutUint32(buf[8:12], h.TermCount)
	binary.LittleEndian.PutUint32(buf[12:16], h.DocCount)
	binary.LittleEndian.PutUint64(buf[16:24], uint64(h.CreatedAt))
	binary.LittleEndian.PutUint64(buf[24:32], uint64(h.PostOffset))
	binary.LittleEndian.PutUint64(buf[32:40], uint64(h.PostSize))
	binary.LittleEndian.PutUint64(buf[40:48], uint64(h.DocsOffset))
	binary.LittleEndian.PutUint64(buf[48:56], uint64(h.DocsSize))
	binary.LittleEndian.PutUint64(buf[56:64], uint64(h.DictOffset))
	binary.LittleEndian.PutUint64(buf[64:72], uint64(h.DictSize))
}

func decodeHeader(buf []byte) segmentHeader {
	return segmentHeader{
		Magic:      binary.LittleEndian.Uint32(buf[0:4]),
		Version:    binary.LittleEndian.Uint32(buf[4:8]),
		TermCount:  binary.LittleEndian.Uint32(buf[8:12]),
		DocCount:   binary.LittleEndian.Uint32(buf[12:16]),
		CreatedAt:  int64(binary.LittleEndian.Uint64(buf[16:24])),
		PostOffset: int64(binary.LittleEndian.Uint64(buf[24:32])),
		PostSize:   int64(binary.LittleEndian.Uint64(buf[32:40])),
		DocsOffset: int64(binary.LittleEndian.Uint64(buf[40:48])),
		DocsSize:   int64(binary.LittleEndian.Uint64(buf[48:56])),
		DictOffset: int64(binary.LittleEndian.Uint64(buf[56:64])),
		DictSize:   int64(binary.LittleEndian.Uint64(buf[64:72])),
	}
}
