package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/rahulgoswami/indexkit/pkg/config"
)

// KafkaSource replays JSON documents from a Kafka topic, starting at the
// earliest offset. When cfg.MaxDocs is set, Next reports io.EOF after that
// many documents; otherwise the replay runs until the context is cancelled.
type KafkaSource struct {
	reader  *kafka.Reader
	maxDocs int
	seen    int
	logger  *slog.Logger
}

// OpenKafka creates a KafkaSource for the configured topic.
func OpenKafka(cfg config.KafkaConfig) *KafkaSource {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.ConsumerGroup,
		MinBytes:    1e3,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	})
	return &KafkaSource{
		reader:  r,
		maxDocs: cfg.MaxDocs,
		logger:  slog.Default().With("component", "kafka-source", "topic", cfg.Topic),
	}
}

func (s *KafkaSource) Name() string { return "kafka" }

func (s *KafkaSource) Next(ctx context.Context) (RawDoc, error) {
	if s.maxDocs > 0 && s.seen >= s.maxDocs {
		return RawDoc{}, io.EOF
	}
	for {
		msg, err := s.reader.FetchMessage(ctx)
		if err != nil {
			return RawDoc{}, fmt.Errorf("fetching message: %w", err)
		}
		var doc RawDoc
		if err := json.Unmarshal(msg.Value, &doc); err != nil {
			s.logger.Error("skipping undecodable message",
				"partition", msg.Partition,
				"offset", msg.Offset,
				"error", err,
			)
			continue
		}
		if err := s.reader.CommitMessages(ctx, msg); err != nil {
			s.logger.Error("failed to commit message",
				"partition", msg.Partition,
				"offset", msg.Offset,
				"error", err,
			)
		}
		s.seen++
		return doc, nil
	}
}

func (s *KafkaSource) Close() error {
	return s.reader.Close()
}
