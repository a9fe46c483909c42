package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Writer.DataDir != "data/index" {
		t.Errorf("Writer.DataDir = %q", cfg.Writer.DataDir)
	}
	if cfg.Writer.Analyzer != "whitespace" {
		t.Errorf("Writer.Analyzer = %q, want whitespace", cfg.Writer.Analyzer)
	}
	if cfg.Writer.CommitEvery != 1000 {
		t.Errorf("Writer.CommitEvery = %d, want 1000", cfg.Writer.CommitEvery)
	}
	if cfg.Postgres.Port != 5432 || cfg.Postgres.Table != "documents" {
		t.Errorf("Postgres defaults = %+v", cfg.Postgres)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging defaults = %+v", cfg.Logging)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
writer:
  dataDir: /tmp/test-index
  analyzer: standard
  commitEvery: 50
kafka:
  brokers: ["broker1:9092", "broker2:9092"]
  topic: corpus-docs
logging:
  level: debug
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Writer.DataDir != "/tmp/test-index" {
		t.Errorf("Writer.DataDir = %q", cfg.Writer.DataDir)
	}
	if cfg.Writer.Analyzer != "standard" {
		t.Errorf("Writer.Analyzer = %q", cfg.Writer.Analyzer)
	}
	if cfg.Writer.CommitEvery != 50 {
		t.Errorf("Writer.CommitEvery = %d", cfg.Writer.CommitEvery)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Topic != "corpus-docs" {
		t.Errorf("Kafka = %+v", cfg.Kafka)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	// Untouched sections keep their defaults.
	if cfg.Postgres.Host != "localhost" {
		t.Errorf("Postgres.Host = %q, want default", cfg.Postgres.Host)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("IK_WRITER_DATA_DIR", "/srv/index")
	t.Setenv("IK_POSTGRES_PORT", "5433")
	t.Setenv("IK_KAFKA_BROKERS", "a:9092,b:9092")
	t.Setenv("IK_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Writer.DataDir != "/srv/index" {
		t.Errorf("Writer.DataDir = %q", cfg.Writer.DataDir)
	}
	if cfg.Postgres.Port != 5433 {
		t.Errorf("Postgres.Port = %d", cfg.Postgres.Port)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "b:9092" {
		t.Errorf("Kafka.Brokers = %v", cfg.Kafka.Brokers)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("does/not/exist.yaml"); err == nil {
		t.Fatal("Load of missing file succeeded, want error")
	}
}

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresConfig{
		Host: "db", Port: 5432, User: "u", Password: "p",
		Database: "d", SSLMode: "disable",
	}.DSN()
	want := "host=db port=5432 user=u password=p dbname=d sslmode=disable"
	if dsn != want {
		t.Errorf("DSN() = %q, want %q", dsn, want)
	}
}
