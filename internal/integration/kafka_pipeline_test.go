//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquawatch/bloom-risk-engine/internal/adapter/kafka"
	"github.com/aquawatch/bloom-risk-engine/internal/config"
	"github.com/aquawatch/bloom-risk-engine/internal/domain"
	"github.com/aquawatch/bloom-risk-engine/internal/observability"
	"github.com/aquawatch/bloom-risk-engine/internal/pipeline"
	"github.com/aquawatch/bloom-risk-engine/internal/sites"
)

const (
	testSourceTopic = "test-observations"
	testSinkTopic   = "test-assessments"
)

var observationDate = time.Date(2026, time.August, 14, 0, 0, 0, 0, time.UTC)

// assessedMessage holds a deserialized message read from the sink topic.
type assessedMessage struct {
	Bundle  domain.AssessmentBundle
	Key     string
	Headers map[string]string
}

// readAssessed reads a single message from the sink consumer and deserializes it.
func readAssessed(ctx context.Context, t *testing.T, consumer *kafkago.Reader) assessedMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var bundle domain.AssessmentBundle
	require.NoError(t, json.Unmarshal(msg.Value, &bundle), "unmarshal sink message")

	return assessedMessage{
		Bundle:  bundle,
		Key:     string(msg.Key),
		Headers: headers,
	}
}

// envelopePayload marshals a demo envelope for a catalog site.
func envelopePayload(t *testing.T, siteID string) []byte {
	t.Helper()
	site, ok := sites.Lookup(siteID)
	require.True(t, ok, "unknown demo site %s", siteID)
	payload, err := json.Marshal(sites.DemoEnvelope(site, observationDate))
	require.NoError(t, err)
	return payload
}

// TestKafkaReaderWriter verifies the adapter layer: kafka.Reader (Extractor)
// and kafka.Writer (Loader) correctly round-trip an envelope through Kafka.
func TestKafkaReaderWriter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)

	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSourceTopic:   testSourceTopic,
		KafkaSinkTopic:     testSinkTopic,
		KafkaGroupID:       fmt.Sprintf("test-reader-%d", time.Now().UnixNano()),
		BatchFlushInterval: 5 * time.Second,
	}

	payload := envelopePayload(t, "lake_erie")

	producer := &kafkago.Writer{
		Addr:  kafkago.TCP(broker),
		Topic: testSourceTopic,
	}
	t.Cleanup(func() { _ = producer.Close() })

	require.NoError(t, producer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte("lake_erie"),
		Value: payload,
	}))

	// Extract via kafka.Reader.
	// Retry because the consumer group may need time to rebalance before
	// partitions are assigned and messages become available.
	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	var batch []domain.RawEvent
	for {
		var err error
		batch, err = reader.ExtractBatch(ctx, 1)
		require.NoError(t, err)
		if len(batch) > 0 {
			break
		}
		if ctx.Err() != nil {
			t.Fatal("timed out waiting for message from source topic")
		}
	}
	require.Len(t, batch, 1)
	raw := batch[0]
	assert.Equal(t, []byte("lake_erie"), raw.Key)
	assert.Equal(t, payload, raw.Value)
	assert.Equal(t, testSourceTopic, raw.Topic)
	require.NotNil(t, raw.Commit, "commit callback should be set")

	// Commit the offset.
	require.NoError(t, raw.Commit(ctx))

	// Score the envelope.
	metrics := observability.NewMetricsForTesting()
	transformer := pipeline.NewTransformer(domain.DefaultModelConfig(), discardLogger(), metrics)
	bundle, err := transformer.Transform(ctx, raw)
	require.NoError(t, err)

	// Load via kafka.Writer.
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	require.NoError(t, writer.LoadBatch(ctx, []domain.AssessmentBundle{bundle}))

	// Read from the sink topic and verify headers + value.
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	am := readAssessed(ctx, t, consumer)
	assert.Equal(t, "lake_erie", am.Key)
	assert.NotEmpty(t, am.Headers["severity"])
	assert.NotEmpty(t, am.Headers["score"])
	assert.Contains(t, am.Headers, "processed_at")
	_, err = time.Parse(time.RFC3339, am.Headers["processed_at"])
	assert.NoError(t, err, "processed_at should be valid RFC3339")

	assert.Equal(t, "lake_erie", am.Bundle.SiteID)
	assert.GreaterOrEqual(t, am.Bundle.Assessment.Score, 70, "Lake Erie demo scenario scores HIGH")
	assert.Len(t, am.Bundle.Forecast, 7)
	require.NotNil(t, am.Bundle.Trend)
}

// TestPipelineEndToEnd wires the full pipeline (Reader → Transformer → Writer)
// with real Kafka and verifies that all demo sites are scored.
func TestPipelineEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)

	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSourceTopic:   testSourceTopic,
		KafkaSinkTopic:     testSinkTopic,
		KafkaGroupID:       fmt.Sprintf("test-pipeline-%d", time.Now().UnixNano()),
		BatchFlushInterval: 5 * time.Second,
	}

	// Publish every demo site's envelope to the source topic.
	catalog := sites.Catalog()
	producer := &kafkago.Writer{
		Addr:  kafkago.TCP(broker),
		Topic: testSourceTopic,
	}
	t.Cleanup(func() { _ = producer.Close() })

	msgs := make([]kafkago.Message, 0, len(catalog))
	for _, site := range catalog {
		msgs = append(msgs, kafkago.Message{
			Key:   []byte(site.ID),
			Value: envelopePayload(t, site.ID),
		})
	}
	require.NoError(t, producer.WriteMessages(ctx, msgs...))

	// Wire up the pipeline.
	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	metrics := observability.NewMetricsForTesting()
	transformer := pipeline.NewTransformer(domain.DefaultModelConfig(), discardLogger(), metrics)

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	p := pipeline.New(reader, transformer, writer, discardLogger(), metrics, 50)

	// Run the pipeline in a goroutine.
	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	// Read all assessment bundles from the sink topic.
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-sink-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	received := make(map[string]assessedMessage, len(catalog))
	for len(received) < len(catalog) {
		am := readAssessed(ctx, t, consumer)
		received[am.Bundle.SiteID] = am
	}

	pipelineCancel()
	require.NoError(t, <-errCh)

	require.Len(t, received, len(catalog))
	for siteID, am := range received {
		assert.Equal(t, siteID, am.Key)
		assert.NotEmpty(t, am.Headers["severity"], "missing severity header")
		assert.Contains(t, am.Headers, "processed_at", "missing processed_at header")
		_, err := time.Parse(time.RFC3339, am.Headers["processed_at"])
		assert.NoError(t, err, "invalid processed_at format")
		assert.Len(t, am.Bundle.Forecast, 7)
	}

	// The contrasting regimes must come out ordered: the warm agricultural
	// basin well above the cold boreal lake.
	erie := received["lake_erie"].Bundle.Assessment
	vanern := received["lake_vanern"].Bundle.Assessment
	assert.GreaterOrEqual(t, erie.Score, 70)
	assert.LessOrEqual(t, vanern.Score, 20)
	assert.Equal(t, domain.SeverityLow, vanern.Severity)
}

// TestPipelineTransformError verifies that an invalid message (poison pill)
// is skipped and the pipeline continues processing valid messages.
func TestPipelineTransformError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)

	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSourceTopic:   testSourceTopic,
		KafkaSinkTopic:     testSinkTopic,
		KafkaGroupID:       fmt.Sprintf("test-poison-%d", time.Now().UnixNano()),
		BatchFlushInterval: 5 * time.Second,
	}

	// Publish: invalid JSON, then a valid envelope.
	producer := &kafkago.Writer{
		Addr:  kafkago.TCP(broker),
		Topic: testSourceTopic,
	}
	t.Cleanup(func() { _ = producer.Close() })

	require.NoError(t, producer.WriteMessages(ctx,
		kafkago.Message{Key: []byte("bad"), Value: []byte("not-json{{{")},
		kafkago.Message{Key: []byte("lake_vanern"), Value: envelopePayload(t, "lake_vanern")},
	))

	// Wire up the pipeline.
	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	metrics := observability.NewMetricsForTesting()
	transformer := pipeline.NewTransformer(domain.DefaultModelConfig(), discardLogger(), metrics)

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	p := pipeline.New(reader, transformer, writer, discardLogger(), metrics, 50)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	// Only the valid message should appear on the sink topic.
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-sink-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	am := readAssessed(ctx, t, consumer)
	assert.Equal(t, "lake_vanern", am.Bundle.SiteID)
	assert.Equal(t, domain.SeverityLow, am.Bundle.Assessment.Severity)

	// Verify no second message arrives (the poison pill was skipped).
	readCtx, readCancel := context.WithTimeout(ctx, 5*time.Second)
	_, err := consumer.ReadMessage(readCtx)
	readCancel()
	assert.Error(t, err, "expected no second message on sink topic")

	pipelineCancel()
	require.NoError(t, <-errCh)
}
