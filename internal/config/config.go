// Package config loads service settings from the environment.
//
// The loading sequence is:
//  1. Load a .env file via godotenv (non-fatal if absent; never overrides
//     variables already set).
//  2. Process envconfig struct tags to populate the Config struct.
//  3. Validate the populated struct with go-playground/validator.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092" validate:"min=1"`
	KafkaSourceTopic string   `envconfig:"KAFKA_SOURCE_TOPIC" default:"environmental-observations" validate:"required"`
	KafkaSinkTopic   string   `envconfig:"KAFKA_SINK_TOPIC" default:"bloom-risk-assessments" validate:"required"`
	KafkaGroupID     string   `envconfig:"KAFKA_GROUP_ID" default:"bloom-risk-engine" validate:"required"`

	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json" validate:"oneof=json text"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`

	BatchSize          int           `envconfig:"BATCH_SIZE" default:"20" validate:"gt=0,lte=500"`
	BatchFlushInterval time.Duration `envconfig:"BATCH_FLUSH_INTERVAL" default:"2s" validate:"gt=0"`

	// Model knobs exposed operationally; the scientific calibration
	// constants stay compiled in.
	ForecastSamples int     `envconfig:"FORECAST_SAMPLES" default:"64" validate:"gt=0,lte=10000"`
	ForecastSeed    uint64  `envconfig:"FORECAST_SEED" default:"42"`
	ForecastWorkers int     `envconfig:"FORECAST_WORKERS" default:"4" validate:"gt=0,lte=64"`
	TrendAlpha      float64 `envconfig:"TREND_ALPHA" default:"0.05" validate:"gt=0,lt=1"`

	// CacheSize bounds the LRU of recent assessment bundles served over HTTP.
	CacheSize int `envconfig:"CACHE_SIZE" default:"256" validate:"gt=0"`
}

// Load reads configuration from the environment, applying defaults where
// unset. A .env file in the working directory is honored for local runs.
func Load() (*Config, error) {
	// godotenv silently succeeds when no .env exists and never overrides
	// variables already present in the environment.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate configuration: %w", err)
	}

	return &cfg, nil
}
