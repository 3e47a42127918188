// Command assess scores a single site offline and prints the assessment
// bundle as JSON. It runs either a built-in demo site or an observation
// envelope read from a file, using the same engine the service runs.
//
// Usage:
//
//	go run ./cmd/assess -site lake_erie
//	go run ./cmd/assess -input envelope.json -output bundle.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/aquawatch/bloom-risk-engine/internal/domain"
	"github.com/aquawatch/bloom-risk-engine/internal/sites"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	siteID := flag.String("site", "", "demo site to score ("+strings.Join(sites.IDs(), ", ")+")")
	input := flag.String("input", "", "path to an observation envelope JSON file (overrides -site)")
	output := flag.String("output", "", "write the bundle JSON here instead of stdout")
	samples := flag.Int("samples", 64, "Monte Carlo samples per forecast day")
	seed := flag.Uint64("seed", 42, "Monte Carlo seed")
	date := flag.String("date", "", "observation date for demo sites (YYYY-MM-DD, default today)")
	flag.Parse()

	env, err := resolveEnvelope(*siteID, *input, *date)
	if err != nil {
		return err
	}

	cfg := domain.DefaultModelConfig()
	cfg.Forecast.Samples = *samples
	cfg.Forecast.Seed = *seed

	bundle := domain.BuildBundle(env, cfg)

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal bundle: %w", err)
	}
	data = append(data, '\n')

	if *output != "" {
		return os.WriteFile(*output, data, 0o644)
	}
	_, err = os.Stdout.Write(data)
	return err
}

func resolveEnvelope(siteID, input, date string) (domain.ObservationEnvelope, error) {
	if input != "" {
		data, err := os.ReadFile(input)
		if err != nil {
			return domain.ObservationEnvelope{}, err
		}
		raw := domain.RawEvent{Value: data}
		return domain.ParseObservationEnvelope(raw)
	}

	if siteID == "" {
		return domain.ObservationEnvelope{}, fmt.Errorf("either -site or -input is required (sites: %s)", strings.Join(sites.IDs(), ", "))
	}
	site, ok := sites.Lookup(siteID)
	if !ok {
		return domain.ObservationEnvelope{}, fmt.Errorf("unknown site %q (sites: %s)", siteID, strings.Join(sites.IDs(), ", "))
	}

	when := time.Now().UTC().Truncate(24 * time.Hour)
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return domain.ObservationEnvelope{}, fmt.Errorf("parse -date: %w", err)
		}
		when = parsed
	}
	return sites.DemoEnvelope(site, when), nil
}
