package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/rahulgoswami/indexkit/pkg/config"
)

// PostgresSource streams (id, title, body) rows from a configured table.
type PostgresSource struct {
	db     *sql.DB
	rows   *sql.Rows
	table  string
	logger *slog.Logger
}

// OpenPostgres connects to PostgreSQL and verifies the connection.
func OpenPostgres(cfg config.PostgresConfig) (*PostgresSource, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return &PostgresSource{
		db:     db,
		table:  cfg.Table,
		logger: slog.Default().With("component", "postgres-source", "table", cfg.Table),
	}, nil
}

func (s *PostgresSource) Name() string { return "postgres" }

// Next returns the next row, starting the streaming query on first call.
func (s *PostgresSource) Next(ctx context.Context) (RawDoc, error) {
	if s.rows == nil {
		query := fmt.Sprintf("SELECT id, title, body FROM %s ORDER BY id", s.table)
		rows, err := s.db.QueryContext(ctx, query)
		if err != nil {
			return RawDoc{}, fmt.Errorf("querying corpus table: %w", err)
		}
		s.rows = rows
		s.logger.Info("corpus query started")
	}
	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			return RawDoc{}, fmt.Errorf("iterating corpus rows: %w", err)
		}
		return RawDoc{}, io.EOF
	}
	var doc RawDoc
	if err := s.rows.Scan(&doc.ID, &doc.Title, &doc.Body); err != nil {
		return RawDoc{}, fmt.Errorf("scanning corpus row: %w", err)
	}
	return doc, nil
}

func (s *PostgresSource) Close() error {
	if s.rows != nil {
		s.rows.Close()
	}
	return s.db.Close()
}
