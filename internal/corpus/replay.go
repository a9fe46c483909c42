package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/rahulgoswami/indexkit/internal/document"
	"github.com/rahulgoswami/indexkit/internal/writer"
	"github.com/rahulgoswami/indexkit/pkg/metrics"
)

// Replay streams src into w: one goroutine drains the source, workers
// assemble documents concurrently, and a single consumer feeds the writer,
// committing every commitEvery documents. A trailing commit flushes the
// remainder. Returns the number of documents indexed.
func Replay(ctx context.Context, src Source, w *writer.Writer, workers, commitEvery int, m *metrics.Metrics) (int, error) {
	if workers < 1 {
		workers = 1
	}
	if commitEvery < 1 {
		commitEvery = 1000
	}
	logger := slog.Default().With("component", "corpus-replay", "source", src.Name())

	g, ctx := errgroup.WithContext(ctx)
	raws := make(chan RawDoc, workers*2)
	docs := make(chan *document.Document, workers*2)

	g.Go(func() error {
		defer close(raws)
		for {
			raw, err := src.Next(ctx)
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("reading corpus source: %w", err)
			}
			select {
			case raws <- raw:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	var build errgroup.Group
	for i := 0; i < workers; i++ {
		build.Go(func() error {
			for raw := range raws {
				select {
				case docs <- BuildDoc(raw):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(docs)
		return build.Wait()
	})

	added := 0
	g.Go(func() error {
		sinceCommit := 0
		for doc := range docs {
			if _, err := w.AddDocument(doc); err != nil {
				return fmt.Errorf("adding corpus document: %w", err)
			}
			added++
			sinceCommit++
			if m != nil {
				m.ReplayDocsTotal.WithLabelValues(src.Name()).Inc()
			}
			if sinceCommit >= commitEvery {
				info, err := w.Commit()
				if err != nil {
					return fmt.Errorf("committing corpus batch: %w", err)
				}
				logger.Info("corpus batch committed",
					"segment", info.Name,
					"docs", info.DocCount,
				)
				sinceCommit = 0
			}
		}
		if sinceCommit > 0 {
			info, err := w.Commit()
			if err != nil {
				return fmt.Errorf("committing final corpus batch: %w", err)
			}
			logger.Info("final corpus batch committed",
				"segment", info.Name,
				"docs", info.DocCount,
			)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return added, err
	}
	logger.Info("replay complete", "docs", added)
	return added, nil
}
