package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/aquawatch/bloom-risk-engine/internal/config"
	"github.com/aquawatch/bloom-risk-engine/internal/domain"
)

// Writer produces assessment bundles to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes multiple assessment bundles to the
// sink topic in a single WriteMessages call for efficiency.
func (w *Writer) LoadBatch(ctx context.Context, bundles []domain.AssessmentBundle) error {
	if len(bundles) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(bundles))
	for i := range bundles {
		msg, err := serializeToMessage(bundles[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an AssessmentBundle into a Kafka message.
// The site ID keys the message so each site's assessments stay ordered
// within one partition; severity and score ride in headers for consumers
// that route on them without unmarshaling the payload.
func serializeToMessage(bundle domain.AssessmentBundle) (kafkago.Message, error) {
	data, err := json.Marshal(bundle)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize assessment bundle: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(bundle.SiteID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "severity", Value: []byte(bundle.Assessment.Severity)},
			{Key: "score", Value: []byte(strconv.Itoa(bundle.Assessment.Score))},
			{Key: "processed_at", Value: []byte(bundle.ProcessedAt.Format(time.RFC3339))},
		},
	}, nil
}
