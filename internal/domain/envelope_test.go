package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEnvelope(t *testing.T) (ObservationEnvelope, RawEvent) {
	t.Helper()
	env := ObservationEnvelope{
		SiteID:      "test_lake",
		SiteName:    "Test Lake",
		Observation: baseObservation(),
	}
	payload, err := json.Marshal(env)
	require.NoError(t, err)
	return env, RawEvent{Value: payload, Topic: "environmental-observations"}
}

func TestParseObservationEnvelope(t *testing.T) {
	want, raw := validEnvelope(t)

	env, err := ParseObservationEnvelope(raw)

	require.NoError(t, err)
	assert.Equal(t, want.SiteID, env.SiteID)
	assert.Equal(t, want.Observation.Latitude, env.Observation.Latitude)
	assert.True(t, want.Observation.Date.Equal(env.Observation.Date))
}

func TestParseObservationEnvelope_MalformedJSON(t *testing.T) {
	_, err := ParseObservationEnvelope(RawEvent{Value: []byte("{not json")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse observation envelope")
}

func TestParseObservationEnvelope_MissingSiteID(t *testing.T) {
	env := ObservationEnvelope{Observation: baseObservation()}
	payload, err := json.Marshal(env)
	require.NoError(t, err)

	_, err = ParseObservationEnvelope(RawEvent{Value: payload})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate observation envelope")
}

func TestParseObservationEnvelope_OutOfRangeCoordinates(t *testing.T) {
	env := ObservationEnvelope{SiteID: "x", Observation: baseObservation()}
	env.Observation.Latitude = 123

	payload, err := json.Marshal(env)
	require.NoError(t, err)

	_, err = ParseObservationEnvelope(RawEvent{Value: payload})

	assert.Error(t, err)
}

func TestBuildBundle(t *testing.T) {
	frozen := time.Date(2026, time.August, 14, 9, 30, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(frozen))
	defer SetClock(nil)

	env, _ := validEnvelope(t)
	env.Observation = forecastObservationFixture()

	bundle := BuildBundle(env, DefaultModelConfig())

	assert.Equal(t, "test_lake", bundle.SiteID)
	assert.Equal(t, frozen, bundle.ProcessedAt)
	assert.Len(t, bundle.Forecast, 7)
	assert.Nil(t, bundle.Trend, "no history, no trend")
	assert.Equal(t, bundle.Assessment.Severity, bundle.WHO.Severity)
}

func TestBuildBundle_TrendNeedsFourHistoryPoints(t *testing.T) {
	env, _ := validEnvelope(t)

	env.History = make([]EnvironmentalObservation, 3)
	for i := range env.History {
		env.History[i] = baseObservation()
	}
	assert.Nil(t, BuildBundle(env, DefaultModelConfig()).Trend)

	env.History = append(env.History, baseObservation())
	trend := BuildBundle(env, DefaultModelConfig()).Trend
	require.NotNil(t, trend)
	assert.Equal(t, 5, trend.Samples)
}
