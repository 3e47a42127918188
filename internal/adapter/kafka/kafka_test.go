package kafka

import (
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquawatch/bloom-risk-engine/internal/domain"
)

func TestMapMessageToRawEvent(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("lake_erie"),
		Value:     []byte(`{"site_id":"lake_erie"}`),
		Topic:     "environmental-observations",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "collector", Value: []byte("open-meteo")},
		},
	}

	r := &Reader{}
	raw := r.mapMessageToRawEvent(msg)

	assert.Equal(t, []byte("lake_erie"), raw.Key)
	assert.JSONEq(t, `{"site_id":"lake_erie"}`, string(raw.Value))
	assert.Equal(t, "environmental-observations", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "open-meteo", raw.Headers["collector"])
	assert.NotNil(t, raw.Commit)
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2026, 8, 14, 15, 10, 0, 0, time.UTC)
	bundle := domain.AssessmentBundle{
		SiteID: "lake_erie",
		Assessment: domain.RiskAssessment{
			Score:    77,
			Severity: domain.SeverityHigh,
		},
		ProcessedAt: now,
	}

	msg, err := serializeToMessage(bundle)
	require.NoError(t, err)

	assert.Equal(t, []byte("lake_erie"), msg.Key)
	assert.Contains(t, string(msg.Value), `"severity":"HIGH"`)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "severity", msg.Headers[0].Key)
	assert.Equal(t, []byte("HIGH"), msg.Headers[0].Value)
	assert.Equal(t, "score", msg.Headers[1].Key)
	assert.Equal(t, []byte("77"), msg.Headers[1].Value)
	assert.Equal(t, "processed_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[2].Value)
}
