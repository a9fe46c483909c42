package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rahulgoswami/indexkit/internal/analysis"
	"github.com/rahulgoswami/indexkit/internal/corpus"
	"github.com/rahulgoswami/indexkit/internal/document"
	"github.com/rahulgoswami/indexkit/internal/fixture"
	"github.com/rahulgoswami/indexkit/internal/writer"
	"github.com/rahulgoswami/indexkit/pkg/config"
	"github.com/rahulgoswami/indexkit/pkg/logger"
	"github.com/rahulgoswami/indexkit/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	mode := flag.String("mode", "fixture", "run mode: fixture or replay")
	source := flag.String("source", "postgres", "replay source: postgres or kafka")
	docCount := flag.Int("docs", 10, "number of builder documents in fixture mode")
	indexName := flag.String("index", "test", "index name recorded in builder documents")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		shutdown := metrics.StartServer(cfg.Metrics.Port)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				slog.Error("metrics server shutdown failed", "error", err)
			}
		}()
	}

	analyzer := analysis.ByName(cfg.Writer.Analyzer)
	opts := []writer.Option{}
	if m != nil {
		opts = append(opts, writer.WithMetrics(m))
	}
	w, err := writer.Open(cfg.Writer.DataDir, analyzer, nil, opts...)
	if err != nil {
		slog.Error("failed to open index writer", "error", err)
		os.Exit(1)
	}
	defer w.Close()

	switch *mode {
	case "fixture":
		err = runFixture(w, *docCount, *indexName)
	case "replay":
		err = runReplay(ctx, cfg, w, *source, m)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		slog.Error("run failed", "mode", *mode, "error", err)
		os.Exit(1)
	}
}

// runFixture writes the canned catalog document plus a run of builder
// documents and commits one segment.
func runFixture(w *writer.Writer, docCount int, indexName string) error {
	registry := fixture.Default()
	catalogDoc := document.New()
	registry.Populate(catalogDoc)
	if _, err := w.AddDocument(catalogDoc); err != nil {
		return fmt.Errorf("adding catalog document: %w", err)
	}
	for i := 0; i < docCount; i++ {
		doc := fixture.BuildDocument(3, i, indexName)
		if _, err := w.AddDocument(doc); err != nil {
			return fmt.Errorf("adding builder document %d: %w", i, err)
		}
	}
	info, err := w.Commit()
	if err != nil {
		return fmt.Errorf("committing fixture segment: %w", err)
	}
	slog.Info("fixture segment written",
		"segment", info.Name,
		"docs", info.DocCount,
		"terms", info.TermCount,
		"bytes", info.SizeBytes,
	)
	return nil
}

// runReplay streams documents from the configured backend into the writer.
func runReplay(ctx context.Context, cfg *config.Config, w *writer.Writer, source string, m *metrics.Metrics) error {
	var (
		src corpus.Source
		err error
	)
	switch source {
	case "postgres":
		src, err = corpus.OpenPostgres(cfg.Postgres)
		if err != nil {
			return fmt.Errorf("opening postgres source: %w", err)
		}
	case "kafka":
		src = corpus.OpenKafka(cfg.Kafka)
	default:
		return fmt.Errorf("unknown source %q", source)
	}
	defer src.Close()

	added, err := corpus.Replay(ctx, src, w, cfg.Writer.ReplayWorkers, cfg.Writer.CommitEvery, m)
	if err != nil {
		return err
	}
	slog.Info("replay finished", "source", source, "docs", added)
	return nil
}
