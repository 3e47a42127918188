package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/aquawatch/bloom-risk-engine/internal/domain"
	"github.com/aquawatch/bloom-risk-engine/internal/observability"
)

// AssessmentTransformer implements Transformer by running the full scoring
// engine over each observation envelope.
type AssessmentTransformer struct {
	cfg     domain.ModelConfig
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates an AssessmentTransformer with the given model
// calibration.
func NewTransformer(cfg domain.ModelConfig, logger *slog.Logger, metrics *observability.Metrics) *AssessmentTransformer {
	return &AssessmentTransformer{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
	}
}

func (t *AssessmentTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.AssessmentBundle, error) {
	env, err := domain.ParseObservationEnvelope(raw)
	if err != nil {
		return domain.AssessmentBundle{}, err
	}

	start := time.Now()
	bundle := domain.BuildBundle(env, t.cfg)
	t.metrics.AssessmentDuration.Observe(time.Since(start).Seconds())

	t.logger.Debug("observation scored",
		"site_id", bundle.SiteID,
		"score", bundle.Assessment.Score,
		"severity", bundle.Assessment.Severity,
		"primary_driver", bundle.Assessment.PrimaryDriver,
	)
	return bundle, nil
}
