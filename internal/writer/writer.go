// Package writer exposes the index write path: open a writer over a
// directory, buffer documents, and commit them into immutable segments.
package writer

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/rahulgoswami/indexkit/internal/analysis"
	"github.com/rahulgoswami/indexkit/internal/document"
	"github.com/rahulgoswami/indexkit/internal/index"
	"github.com/rahulgoswami/indexkit/internal/segment"
	"github.com/rahulgoswami/indexkit/pkg/metrics"
)

var (
	// ErrWriterClosed is returned by operations on a closed writer.
	ErrWriterClosed = errors.New("index writer closed")
	// ErrNoDocuments is returned by Commit when nothing is buffered.
	ErrNoDocuments = errors.New("no documents buffered for commit")
)

// Option configures a Writer at open time.
type Option func(*Writer)

// WithMetrics attaches Prometheus collectors to the writer.
func WithMetrics(m *metrics.Metrics) Option {
	return func(w *Writer) { w.metrics = m }
}

// WithLogger overrides the component logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Writer) { w.logger = l }
}

// Writer buffers documents in a memory index and flushes them into segments
// on Commit. It assumes a single caller; committed segments are safe for
// concurrent reads.
type Writer struct {
	dir       string
	analyzer  analysis.Analyzer
	sim       index.Similarity
	mem       *index.MemoryIndex
	segWriter *segment.Writer
	readers   []*segment.Reader
	segments  []segment.SegmentInfo
	nextDocID int
	closed    bool
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// Open creates a Writer over dir. A nil analyzer defaults to whitespace
// tokenisation and a nil similarity to the classic 1/sqrt(length) norm.
func Open(dir string, analyzer analysis.Analyzer, sim index.Similarity, opts ...Option) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}
	if analyzer == nil {
		analyzer = analysis.Whitespace{}
	}
	if sim == nil {
		sim = index.ClassicSimilarity{}
	}
	w := &Writer{
		dir:       dir,
		analyzer:  analyzer,
		sim:       sim,
		mem:       index.NewMemoryIndex(),
		segWriter: segment.NewWriter(dir),
		logger:    slog.Default().With("component", "index-writer"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// AddDocument buffers doc for the next commit and returns its
// segment-local document ID.
func (w *Writer) AddDocument(doc *document.Document) (int, error) {
	if w.closed {
		return 0, ErrWriterClosed
	}
	docID := w.nextDocID
	w.nextDocID++
	w.mem.AddDocument(docID, doc, w.analyzer, w.sim)
	if w.metrics != nil {
		w.metrics.DocsAddedTotal.Inc()
		indexed := 0
		for _, f := range doc.Fields() {
			if f.Flags().Indexed && !f.Binary() {
				indexed++
			}
		}
		w.metrics.FieldsIndexedTotal.Add(float64(indexed))
	}
	w.logger.Debug("document buffered",
		"doc_id", docID,
		"fields", doc.Len(),
		"mem_size", w.mem.Size(),
	)
	return docID, nil
}

// Commit flushes the buffered documents into a new segment, reopens it for
// reading, and resets the buffer. It returns the descriptor of the segment.
func (w *Writer) Commit() (segment.SegmentInfo, error) {
	if w.closed {
		return segment.SegmentInfo{}, ErrWriterClosed
	}
	if w.mem.DocCount() == 0 {
		return segment.SegmentInfo{}, ErrNoDocuments
	}
	start := time.Now()
	snapshot := w.mem.Snapshot()
	info, err := w.segWriter.Write(snapshot)
	if err != nil {
		if w.metrics != nil {
			w.metrics.CommitsTotal.WithLabelValues("error").Inc()
		}
		return segment.SegmentInfo{}, fmt.Errorf("writing segment: %w", err)
	}
	reader, err := segment.OpenReader(info.Path)
	if err != nil {
		if w.metrics != nil {
			w.metrics.CommitsTotal.WithLabelValues("error").Inc()
		}
		return segment.SegmentInfo{}, fmt.Errorf("opening new segment for reading: %w", err)
	}
	w.readers = append(w.readers, reader)
	w.segments = append(w.segments, info)
	w.mem.Reset()
	w.nextDocID = 0

	if w.metrics != nil {
		w.metrics.CommitsTotal.WithLabelValues("ok").Inc()
		w.metrics.CommitDuration.Observe(time.Since(start).Seconds())
		w.metrics.SegmentBytes.Observe(float64(info.SizeBytes))
	}
	w.logger.Info("segment committed",
		"segment", info.Name,
		"terms", info.TermCount,
		"docs", info.DocCount,
		"bytes", info.SizeBytes,
	)
	return info, nil
}

// NumBufferedDocs returns the number of documents added since the last
// commit.
func (w *Writer) NumBufferedDocs() int {
	return w.mem.DocCount()
}

// Segments returns the descriptors of every segment committed by this
// writer, oldest first.
func (w *Writer) Segments() []segment.SegmentInfo {
	out := make([]segment.SegmentInfo, len(w.segments))
	copy(out, w.segments)
	return out
}

// Reader returns the open reader for the i-th committed segment.
func (w *Writer) Reader(i int) *segment.Reader {
	return w.readers[i]
}

// Close releases the writer and its segment readers. Buffered, uncommitted
// documents are discarded. Close is idempotent.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	var firstErr error
	for _, reader := range w.readers {
		if err := reader.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	w.readers = nil
	if w.mem.DocCount() > 0 {
		w.logger.Warn("closing writer with uncommitted documents",
			"buffered", w.mem.DocCount(),
		)
	}
	return firstErr
}
