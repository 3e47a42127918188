// Command genfixtures writes observation-envelope and assessment-bundle
// fixtures for the demo sites. It uses the actual engine packages so the
// generated bundles match real pipeline behavior, which keeps downstream
// consumers' test data honest.
//
// Usage:
//
//	go run ./cmd/genfixtures \
//	  -out data/mock \
//	  -date 2026-08-14
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/aquawatch/bloom-risk-engine/internal/domain"
	"github.com/aquawatch/bloom-risk-engine/internal/sites"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out", "data/mock", "directory to write fixture files into")
	date := flag.String("date", "2026-08-14", "observation date (YYYY-MM-DD)")
	flag.Parse()

	when, err := time.Parse("2006-01-02", *date)
	if err != nil {
		return fmt.Errorf("parse -date: %w", err)
	}

	// Freeze the bundle timestamp so regenerated fixtures only differ when
	// the engine's behavior changes.
	domain.SetClock(clockwork.NewFakeClockAt(when.Add(12 * time.Hour)))
	defer domain.SetClock(nil)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	cfg := domain.DefaultModelConfig()
	for _, site := range sites.Catalog() {
		env := sites.DemoEnvelope(site, when)
		if err := writeJSON(filepath.Join(*outDir, site.ID+"_envelope.json"), env); err != nil {
			return err
		}

		bundle := domain.BuildBundle(env, cfg)
		if err := writeJSON(filepath.Join(*outDir, site.ID+"_bundle.json"), bundle); err != nil {
			return err
		}
		fmt.Printf("%-14s score=%d severity=%s driver=%s\n",
			site.ID, bundle.Assessment.Score, bundle.Assessment.Severity, bundle.Assessment.PrimaryDriver)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
