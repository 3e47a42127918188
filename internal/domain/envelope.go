package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// validate is shared across parses; validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = validator.New()

// RawEvent represents an unprocessed message from the observation topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// ObservationEnvelope is the wire payload produced by the site collectors:
// one fresh observation plus an optional chronological window of earlier
// observations for trend analysis.
type ObservationEnvelope struct {
	SiteID      string                     `json:"site_id" validate:"required"`
	SiteName    string                     `json:"site_name"`
	Observation EnvironmentalObservation   `json:"observation"`
	History     []EnvironmentalObservation `json:"history,omitempty"` // oldest first
}

// AssessmentBundle is the engine's full output for one site: the current
// assessment, the 7-day forecast band, and the 30-day trend when enough
// history accompanied the envelope.
type AssessmentBundle struct {
	SiteID      string          `json:"site_id"`
	SiteName    string          `json:"site_name,omitempty"`
	Assessment  RiskAssessment  `json:"assessment"`
	Forecast    []ForecastPoint `json:"forecast,omitempty"`
	Trend       *TrendResult    `json:"trend,omitempty"`
	WHO         WHOComparison   `json:"who_comparison"`
	ProcessedAt time.Time       `json:"processed_at"`
}

// ParseObservationEnvelope deserializes a RawEvent's value and validates
// the field ranges (coordinates, land-cover percentages, required date).
func ParseObservationEnvelope(raw RawEvent) (ObservationEnvelope, error) {
	var env ObservationEnvelope
	if err := json.Unmarshal(raw.Value, &env); err != nil {
		return ObservationEnvelope{}, fmt.Errorf("parse observation envelope: %w", err)
	}
	if err := validate.Struct(env); err != nil {
		return ObservationEnvelope{}, fmt.Errorf("validate observation envelope %q: %w", env.SiteID, err)
	}
	return env, nil
}

// BuildBundle runs the full engine over one envelope: assessment, forecast
// band, WHO comparison, and a trend when at least four history points are
// present. ProcessedAt comes from the package clock so tests can freeze it.
func BuildBundle(env ObservationEnvelope, cfg ModelConfig) AssessmentBundle {
	assessment := Assess(env.Observation, cfg)

	bundle := AssessmentBundle{
		SiteID:      env.SiteID,
		SiteName:    env.SiteName,
		Assessment:  assessment,
		Forecast:    Forecast(env.Observation, cfg),
		WHO:         CompareWHO(assessment),
		ProcessedAt: clock.Now().UTC(),
	}

	if len(env.History) >= 4 {
		window := make([]EnvironmentalObservation, 0, len(env.History)+1)
		window = append(window, env.History...)
		window = append(window, env.Observation)
		trend := TrendFromObservations(window, cfg)
		bundle.Trend = &trend
	}
	return bundle
}
