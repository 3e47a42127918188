package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// risk-scoring pipeline.
type Metrics struct {
	ObservationsConsumed prometheus.Counter
	AssessmentsProduced  prometheus.Counter
	TransformErrors      prometheus.Counter
	PipelineRunning      prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Scoring metrics.
	AssessmentsBySeverity *prometheus.CounterVec // label: severity={LOW,MODERATE,HIGH,VERY_HIGH}
	AssessmentDuration    prometheus.Histogram
	CacheLookups          *prometheus.CounterVec // label: result={hit,miss}
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ObservationsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bloom_engine",
			Name:      "observations_consumed_total",
			Help:      "Total observation envelopes read from the source topic.",
		}),
		AssessmentsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bloom_engine",
			Name:      "assessments_produced_total",
			Help:      "Total assessment bundles written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bloom_engine",
			Name:      "transform_errors_total",
			Help:      "Total envelopes that failed to parse, validate, or score.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bloom_engine",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bloom_engine",
			Name:      "batch_size",
			Help:      "Number of envelopes per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bloom_engine",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-score-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		AssessmentsBySeverity: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bloom_engine",
			Name:      "assessments_by_severity_total",
			Help:      "Assessment bundles produced, by WHO severity class.",
		}, []string{"severity"}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bloom_engine",
			Name:      "assessment_duration_seconds",
			Help:      "Duration of one full scoring pass including forecast and trend.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bloom_engine",
			Name:      "cache_lookups_total",
			Help:      "Assessment cache lookups on the HTTP surface, by result.",
		}, []string{"result"}),
	}

	prometheus.MustRegister(
		m.ObservationsConsumed,
		m.AssessmentsProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.AssessmentsBySeverity,
		m.AssessmentDuration,
		m.CacheLookups,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ObservationsConsumed:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "bloom_engine", Name: "observations_consumed_total"}),
		AssessmentsProduced:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "bloom_engine", Name: "assessments_produced_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "bloom_engine", Name: "transform_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "bloom_engine", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "bloom_engine", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "bloom_engine", Name: "batch_processing_duration_seconds"}),
		AssessmentsBySeverity:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "bloom_engine", Name: "assessments_by_severity_total"}, []string{"severity"}),
		AssessmentDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "bloom_engine", Name: "assessment_duration_seconds"}),
		CacheLookups:            prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "bloom_engine", Name: "cache_lookups_total"}, []string{"result"}),
	}
}
