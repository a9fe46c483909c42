package corpus

import (
	"context"
	"errors"
	"io"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/rahulgoswami/indexkit/pkg/config"
)

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// TestPostgresSource runs against a real database and skips when none is
// reachable.
func TestPostgresSource(t *testing.T) {
	cfg := config.PostgresConfig{
		Host:            envOrDefault("TEST_POSTGRES_HOST", "localhost"),
		Port:            envOrDefaultInt("TEST_POSTGRES_PORT", 5432),
		Database:        envOrDefault("TEST_POSTGRES_DB", "indexkit_test"),
		User:            envOrDefault("TEST_POSTGRES_USER", "indexkit"),
		Password:        envOrDefault("TEST_POSTGRES_PASSWORD", "localdev"),
		SSLMode:         "disable",
		Table:           envOrDefault("TEST_POSTGRES_TABLE", "documents"),
		MaxOpenConns:    2,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	}
	src, err := OpenPostgres(cfg)
	if err != nil {
		t.Skipf("skipping integration test: postgres unavailable: %v", err)
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	count := 0
	for {
		doc, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next error after %d docs: %v", count, err)
		}
		if doc.ID == "" {
			t.Errorf("doc %d has empty id", count)
		}
		count++
		if count >= 100 {
			break
		}
	}
	t.Logf("streamed %d documents from %s", count, cfg.Table)
}

// TestKafkaSourceMaxDocs only checks the replay bound; fetching against a
// real broker is exercised when TEST_KAFKA_BROKER is set.
func TestKafkaSourceMaxDocs(t *testing.T) {
	broker := os.Getenv("TEST_KAFKA_BROKER")
	if broker == "" {
		t.Skip("skipping integration test: TEST_KAFKA_BROKER not set")
	}
	src := OpenKafka(config.KafkaConfig{
		Brokers:       []string{broker},
		ConsumerGroup: "indexkit-test",
		Topic:         envOrDefault("TEST_KAFKA_TOPIC", "document-ingest"),
		MaxDocs:       5,
	})
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	count := 0
	for {
		_, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Skipf("skipping: broker fetch failed: %v", err)
		}
		count++
		if count > 5 {
			t.Fatalf("source yielded %d docs, MaxDocs is 5", count)
		}
	}
	if count != 5 {
		t.Errorf("count = %d, want 5", count)
	}
}
